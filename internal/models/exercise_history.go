package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExerciseHistory is a dated record of the sets performed for one exercise
type ExerciseHistory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_exercise_history_user_exercise" json:"user_id"`
	Exercise  string         `gorm:"not null;index:idx_exercise_history_user_exercise" json:"exercise"`
	Date      string         `gorm:"not null" json:"date"`
	Sets      datatypes.JSON `gorm:"type:jsonb;not null" json:"sets"`
	CreatedAt time.Time      `json:"-"`
}

func (ExerciseHistory) TableName() string {
	return "exercise_history"
}
