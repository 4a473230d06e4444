package models_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/jimdaga/rep-tracker/internal/database/dbtest"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestAuthIdentityTokensEncryptedAtRest(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("a", 32)))
	require.NoError(t, models.InitEncryption(key))
	t.Cleanup(models.ResetEncryption)

	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "lifter@example.com")

	identity := models.AuthIdentity{
		UserID:         user.ID,
		Provider:       "google",
		ProviderUserID: "google-123",
		AccessToken:    "access-token",
		RefreshToken:   "refresh-token",
	}
	require.NoError(t, db.Create(&identity).Error)
	assert.Equal(t, "access-token", identity.AccessToken, "struct keeps plaintext after save")

	var raw struct {
		AccessToken  string
		RefreshToken string
	}
	require.NoError(t, db.Table("auth_identities").Select("access_token, refresh_token").Where("id = ?", identity.ID).Scan(&raw).Error)
	assert.NotEqual(t, "access-token", raw.AccessToken)
	assert.NotEqual(t, "refresh-token", raw.RefreshToken)

	var loaded models.AuthIdentity
	require.NoError(t, db.First(&loaded, identity.ID).Error)
	assert.Equal(t, "access-token", loaded.AccessToken)
	assert.Equal(t, "refresh-token", loaded.RefreshToken)
}

func TestAuthIdentityWithoutEncryption(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "plain@example.com")

	identity := models.AuthIdentity{UserID: user.ID, Provider: "google", ProviderUserID: "g-1", AccessToken: "tok"}
	require.NoError(t, db.Create(&identity).Error)

	var loaded models.AuthIdentity
	require.NoError(t, db.First(&loaded, identity.ID).Error)
	assert.Equal(t, "tok", loaded.AccessToken)
}

func TestWorkoutGetsGeneratedID(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "w@example.com")

	a := models.Workout{UserID: user.ID, Name: "A", Date: "2025-01-01", Exercises: datatypes.JSON(`[]`)}
	b := models.Workout{UserID: user.ID, Name: "B", Date: "2025-01-02", Exercises: datatypes.JSON(`[]`)}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUserEmailUnique(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "dup@example.com")

	err := db.Create(&models.User{Email: "dup@example.com"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCompletedSetUniquePerWorkoutAndUser(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "c@example.com")
	workout := models.Workout{UserID: user.ID, Name: "A", Date: "2025-01-01", Exercises: datatypes.JSON(`[]`)}
	require.NoError(t, db.Create(&workout).Error)

	first := models.CompletedSet{WorkoutID: workout.ID, UserID: user.ID, CompletedSets: datatypes.JSON(`{}`)}
	require.NoError(t, db.Create(&first).Error)

	second := models.CompletedSet{WorkoutID: workout.ID, UserID: user.ID, CompletedSets: datatypes.JSON(`{}`)}
	assert.ErrorIs(t, db.Create(&second).Error, gorm.ErrDuplicatedKey)
}
