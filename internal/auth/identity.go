package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/markbates/goth"
	"gorm.io/gorm"
)

// ErrNoEmail is returned when the provider's identity payload has no email
var ErrNoEmail = errors.New("identity provider returned no email")

// Session keys
const (
	sessionUserID    = "user_id"
	sessionUserEmail = "user_email"
)

const identityKey = "auth.identity"

// Identity is the authenticated caller, resolved once per request
type Identity struct {
	UserID uint
	Email  string
}

// SetIdentity attaches the caller to the request context
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity returns the caller set by RequireAuth. It panics when
// used on a route without RequireAuth.
func CurrentIdentity(c *gin.Context) Identity {
	return c.MustGet(identityKey).(Identity)
}

// CompleteLogin maps a provider user onto a local User, creating the user
// on first login for that email, and records the provider identity.
func CompleteLogin(db *gorm.DB, gothUser goth.User) (*models.User, error) {
	if gothUser.Email == "" {
		return nil, ErrNoEmail
	}

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Where("email = ?", gothUser.Email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:       gothUser.Email,
				Name:        gothUser.Name,
				LastLoginAt: &now,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up user: %w", err)
		default:
			if err := tx.Model(&user).Updates(map[string]interface{}{
				"name":          gothUser.Name,
				"last_login_at": now,
			}).Error; err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		return upsertIdentity(tx, user.ID, gothUser)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func upsertIdentity(tx *gorm.DB, userID uint, gothUser goth.User) error {
	if gothUser.UserID == "" || gothUser.Provider == "" {
		return nil
	}

	var identity models.AuthIdentity
	err := tx.Where("provider = ? AND provider_user_id = ?", gothUser.Provider, gothUser.UserID).First(&identity).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up auth identity: %w", err)
	}

	identity.UserID = userID
	identity.Provider = gothUser.Provider
	identity.ProviderUserID = gothUser.UserID
	identity.AccessToken = gothUser.AccessToken
	identity.RefreshToken = gothUser.RefreshToken
	identity.TokenExpiry = nil
	if !gothUser.ExpiresAt.IsZero() {
		expiry := gothUser.ExpiresAt
		identity.TokenExpiry = &expiry
	}

	if err := tx.Save(&identity).Error; err != nil {
		return fmt.Errorf("failed to save auth identity: %w", err)
	}
	return nil
}

// resolveIdentity reads the session and confirms the user still exists.
// A session pointing at a missing user is cleared.
func resolveIdentity(c *gin.Context, db *gorm.DB) (Identity, bool, error) {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserID).(uint)
	if !ok || userID == 0 {
		return Identity{}, false, nil
	}

	var user models.User
	err := db.WithContext(c.Request.Context()).Select("id", "email").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session.Clear()
		_ = session.Save()
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, fmt.Errorf("failed to load session user: %w", err)
	}

	return Identity{UserID: user.ID, Email: user.Email}, true, nil
}
