package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account provisioned on first login, keyed by email
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex:idx_users_email_not_deleted,where:deleted_at IS NULL;not null"`
	Name        string `gorm:"not null;default:''"`
	LastLoginAt *time.Time

	// Associations
	AuthIdentities  []AuthIdentity    `gorm:"constraint:OnDelete:CASCADE;"`
	Favorites       []Favorite        `gorm:"constraint:OnDelete:CASCADE;"`
	Workouts        []Workout         `gorm:"constraint:OnDelete:CASCADE;"`
	CompletedSets   []CompletedSet    `gorm:"constraint:OnDelete:CASCADE;"`
	ExerciseHistory []ExerciseHistory `gorm:"constraint:OnDelete:CASCADE;"`
}

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&AuthIdentity{},
		&Favorite{},
		&Workout{},
		&CompletedSet{},
		&ExerciseHistory{},
	}
}
