package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"gorm.io/gorm"
)

// RequireAuth is a middleware that ensures the user is authenticated.
// API callers get a 401 JSON error instead of a redirect.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok, err := resolveIdentity(c, db)
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to resolve session", err))
			return
		}
		if !ok {
			apierror.Respond(c, apierror.Unauthenticated("Unauthorized"))
			return
		}

		// User is authenticated - set context values for downstream handlers
		SetIdentity(c, identity)
		c.Next()
	}
}
