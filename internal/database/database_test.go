package database

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jimdaga/rep-tracker/internal/database/dbtest"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTimezoneUTC(t *testing.T) {
	dsn, err := ensureTimezoneUTC("postgres://u:p@localhost:5432/reps?sslmode=disable")
	require.NoError(t, err)
	assert.Contains(t, dsn, "TimeZone=UTC")
	assert.Contains(t, dsn, "sslmode=disable")

	dsn, err = ensureTimezoneUTC("postgres://u:p@localhost:5432/reps?TimeZone=America%2FChicago")
	require.NoError(t, err)
	assert.Contains(t, dsn, "TimeZone=America%2FChicago")
	assert.NotContains(t, dsn, "TimeZone=UTC")
}

func TestInitRequiresURL(t *testing.T) {
	_, err := Init("")
	assert.EqualError(t, err, "database URL is required")
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func TestParseSeedRejectsUnknownKeys(t *testing.T) {
	_, err := parseSeed([]byte("user:\n  email: a@b.c\n  nickname: typo\n"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("favorites: []\n"))
	assert.ErrorContains(t, err, "user.email")
}

func TestSeedDevDataIsIdempotent(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, SeedDevData(db))
	require.NoError(t, SeedDevData(db))

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 1, users)

	var user models.User
	require.NoError(t, db.Where("email = ?", "dev@reptracker.local").First(&user).Error)

	var favorites []models.Favorite
	db.Where("user_id = ?", user.ID).Find(&favorites)
	assert.Len(t, favorites, 3)

	var workouts []models.Workout
	db.Where("user_id = ?", user.ID).Order("date").Find(&workouts)
	require.Len(t, workouts, 2)
	assert.Equal(t, "Push Day", workouts[0].Name)
	require.NotNil(t, workouts[0].Notes)
	assert.Nil(t, workouts[1].Notes)

	var exercises []struct {
		Name string           `json:"name"`
		Sets []map[string]any `json:"sets"`
	}
	require.NoError(t, json.Unmarshal(workouts[0].Exercises, &exercises))
	require.Len(t, exercises, 2)
	assert.Equal(t, "barbell bench press", exercises[0].Name)
	assert.Len(t, exercises[0].Sets, 3)

	var history int64
	db.Model(&models.ExerciseHistory{}).Where("user_id = ?", user.ID).Count(&history)
	assert.EqualValues(t, 2, history)
}

func TestPing(t *testing.T) {
	db := dbtest.New(t)
	assert.NoError(t, Ping(context.Background(), db))
}

func TestGormLoggerWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	l := newGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	l.Error(context.Background(), "query failed: %s", "boom")

	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open("", DefaultPool)
	assert.EqualError(t, err, "database URL is required")
}
