package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"gorm.io/gorm"
)

// HandleLogin initiates the OAuth flow
func HandleLogin(provider IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider.BeginAuth(c.Writer, c.Request)
	}
}

// HandleCallback completes the OAuth flow, provisions the user, and stores
// the identity in the session before sending the browser back to the
// frontend.
func HandleCallback(db *gorm.DB, provider IdentityProvider, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		gothUser, err := provider.CompleteAuth(c.Writer, c.Request)
		if err != nil {
			slog.Warn("Auth error", "error", err)
			c.Redirect(http.StatusFound, frontendURL+"/login?error=auth_failed")
			return
		}

		user, err := CompleteLogin(db.WithContext(c.Request.Context()), gothUser)
		if err != nil {
			slog.Warn("Login failed", "email", gothUser.Email, "error", err)
			c.Redirect(http.StatusFound, frontendURL+"/login?error=auth_failed")
			return
		}

		session := sessions.Default(c)
		session.Set(sessionUserID, user.ID)
		session.Set(sessionUserEmail, user.Email)

		if err := session.Save(); err != nil {
			slog.Error("Session save error", "error", err)
			c.Redirect(http.StatusFound, frontendURL+"/login?error=session_failed")
			return
		}

		slog.Info("User authenticated", "user_id", user.ID, "email", user.Email)
		c.Redirect(http.StatusFound, frontendURL)
	}
}

// HandleLogout clears the session and redirects to the frontend
func HandleLogout(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})

		if err := session.Save(); err != nil {
			slog.Error("Session clear error", "error", err)
		}

		c.Redirect(http.StatusFound, frontendURL)
	}
}

// HandleCurrentUser reports whether the caller has a valid session
func HandleCurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok, err := resolveIdentity(c, db)
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to resolve session", err))
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"is_authenticated": false, "email": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_authenticated": true, "email": identity.Email})
	}
}
