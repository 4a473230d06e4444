package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Workout is a named, dated list of exercises. Exercises is stored as an
// opaque JSON array of {name, sets: [{reps, weight}]} records.
type Workout struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"not null" json:"name"`
	Date      string         `gorm:"not null" json:"date"`
	Notes     *string        `gorm:"type:text" json:"notes"`
	Exercises datatypes.JSON `gorm:"type:jsonb;not null" json:"exercises"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`

	CompletedSets []CompletedSet `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate assigns the public workout token
func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// CompletedSet is the latest completion snapshot of a workout's sets for
// one user. There is at most one row per (workout, user).
type CompletedSet struct {
	ID            uint           `gorm:"primaryKey"`
	WorkoutID     string         `gorm:"size:36;not null;uniqueIndex:idx_completed_sets_workout_user"`
	UserID        uint           `gorm:"not null;uniqueIndex:idx_completed_sets_workout_user"`
	CompletedSets datatypes.JSON `gorm:"column:completed_sets;type:jsonb;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
