package models

import (
	"time"

	"github.com/jimdaga/rep-tracker/internal/crypto"
	"gorm.io/gorm"
)

var encryptor *crypto.TokenEncryptor

// InitEncryption enables at-rest encryption of provider tokens. Without it
// tokens are stored as received.
func InitEncryption(encryptionKey string) error {
	enc, err := crypto.NewTokenEncryptor(encryptionKey)
	if err != nil {
		return err
	}
	encryptor = enc
	return nil
}

// AuthIdentity links a User to the account it logged in with at an OAuth
// provider and keeps the last tokens the provider issued.
type AuthIdentity struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;index"`
	Provider       string `gorm:"not null;uniqueIndex:idx_auth_identities_provider_user"`
	ProviderUserID string `gorm:"not null;uniqueIndex:idx_auth_identities_provider_user"`
	AccessToken    string `gorm:"type:text"` // encrypted when InitEncryption was called
	RefreshToken   string `gorm:"type:text"` // encrypted when InitEncryption was called
	TokenExpiry    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BeforeSave encrypts tokens on their way into the database.
func (a *AuthIdentity) BeforeSave(tx *gorm.DB) error {
	return a.transformTokens(encrypt)
}

// AfterSave restores plaintext on the in-memory struct.
func (a *AuthIdentity) AfterSave(tx *gorm.DB) error {
	return a.transformTokens(decrypt)
}

// AfterFind decrypts tokens after loading from database
func (a *AuthIdentity) AfterFind(tx *gorm.DB) error {
	return a.transformTokens(decrypt)
}

type tokenOp int

const (
	encrypt tokenOp = iota
	decrypt
)

func (a *AuthIdentity) transformTokens(op tokenOp) error {
	if encryptor == nil {
		return nil
	}

	for _, field := range []*string{&a.AccessToken, &a.RefreshToken} {
		var (
			out string
			err error
		)
		if op == encrypt {
			out, err = encryptor.Encrypt(*field)
		} else {
			out, err = encryptor.Decrypt(*field)
		}
		if err != nil {
			return err
		}
		*field = out
	}
	return nil
}
