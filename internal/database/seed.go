package database

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jimdaga/rep-tracker/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed seed/dev.yaml
var devSeed []byte

type seedData struct {
	User struct {
		Email string `yaml:"email"`
		Name  string `yaml:"name"`
	} `yaml:"user"`
	Favorites []struct {
		ExerciseID   string `yaml:"exercise_id"`
		ExerciseName string `yaml:"exercise_name"`
	} `yaml:"favorites"`
	Workouts []struct {
		Name      string           `yaml:"name"`
		Date      string           `yaml:"date"`
		Notes     string           `yaml:"notes"`
		Exercises []map[string]any `yaml:"exercises"`
	} `yaml:"workouts"`
	History []struct {
		Exercise string           `yaml:"exercise"`
		Date     string           `yaml:"date"`
		Sets     []map[string]any `yaml:"sets"`
	} `yaml:"history"`
}

// parseSeed decodes a seed document. Unknown keys are rejected so typos in
// the fixture fail loudly instead of seeding half the data.
func parseSeed(data []byte) (*seedData, error) {
	var seed seedData
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	if seed.User.Email == "" {
		return nil, fmt.Errorf("seed data missing required field: user.email")
	}
	return &seed, nil
}

// SeedDevData populates the database with development test data.
// Idempotent: skips if the seed user already exists.
func SeedDevData(db *gorm.DB) error {
	seed, err := parseSeed(devSeed)
	if err != nil {
		return err
	}

	var existing models.User
	err = db.Where("email = ?", seed.User.Email).First(&existing).Error
	if err == nil {
		slog.Info("Seed data already exists, skipping", "email", seed.User.Email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up seed user: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := models.User{Email: seed.User.Email, Name: seed.User.Name}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}

		for _, f := range seed.Favorites {
			fav := models.Favorite{UserID: user.ID, ExerciseID: f.ExerciseID, ExerciseName: f.ExerciseName}
			if err := tx.Create(&fav).Error; err != nil {
				return fmt.Errorf("failed to create seed favorite: %w", err)
			}
		}

		for _, w := range seed.Workouts {
			exercises, err := json.Marshal(w.Exercises)
			if err != nil {
				return err
			}
			workout := models.Workout{
				UserID:    user.ID,
				Name:      w.Name,
				Date:      w.Date,
				Exercises: datatypes.JSON(exercises),
			}
			if w.Notes != "" {
				notes := w.Notes
				workout.Notes = &notes
			}
			if err := tx.Create(&workout).Error; err != nil {
				return fmt.Errorf("failed to create seed workout: %w", err)
			}
		}

		for _, h := range seed.History {
			sets, err := json.Marshal(h.Sets)
			if err != nil {
				return err
			}
			entry := models.ExerciseHistory{
				UserID:   user.ID,
				Exercise: h.Exercise,
				Date:     h.Date,
				Sets:     datatypes.JSON(sets),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create seed history: %w", err)
			}
		}

		slog.Info("Seeded dev data",
			"user", user.Email,
			"favorites", len(seed.Favorites),
			"workouts", len(seed.Workouts),
			"history", len(seed.History),
		)
		return nil
	})
}
