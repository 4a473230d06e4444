package models

import "time"

// Favorite is a user's saved reference to a catalog exercise
type Favorite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExerciseID   string    `gorm:"size:100;not null" json:"exercise_id"`
	ExerciseName string    `gorm:"size:255;not null" json:"exercise_name"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time `json:"-"`
}
