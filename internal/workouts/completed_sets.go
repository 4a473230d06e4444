package workouts

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/jimdaga/rep-tracker/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type completedSetsRequest struct {
	CompletedSets json.RawMessage `json:"completedSets"`
}

// GetCompletedSetsHandler returns the caller's latest snapshot for a
// workout, or an empty object when none has been recorded.
func GetCompletedSetsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		workout, err := findWorkout(c.Request.Context(), db, c.Param("id"), identity.UserID)
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		var snapshots []models.CompletedSet
		err = db.WithContext(c.Request.Context()).
			Where("workout_id = ? AND user_id = ?", workout.ID, identity.UserID).
			Limit(1).
			Find(&snapshots).Error
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to load completed sets", err))
			return
		}

		completed := datatypes.JSON("{}")
		if len(snapshots) > 0 {
			completed = snapshots[0].CompletedSets
		}
		c.JSON(http.StatusOK, gin.H{"completedSets": completed})
	}
}

// SaveCompletedSetsHandler replaces the caller's snapshot for a workout.
// There is at most one snapshot per workout and user.
func SaveCompletedSetsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		var req completedSetsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.Validation("Invalid JSON body"))
			return
		}
		if !present(req.CompletedSets) {
			apierror.Respond(c, apierror.Validation("Missing completedSets"))
			return
		}
		if err := validation.Validate(validation.CompletedSets, req.CompletedSets); err != nil {
			apierror.Respond(c, apierror.Validation(err.Error()))
			return
		}

		workout, err := findWorkout(c.Request.Context(), db, c.Param("id"), identity.UserID)
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		snapshot := models.CompletedSet{
			WorkoutID:     workout.ID,
			UserID:        identity.UserID,
			CompletedSets: datatypes.JSON(req.CompletedSets),
			UpdatedAt:     time.Now(),
		}
		err = db.WithContext(c.Request.Context()).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workout_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed_sets", "updated_at"}),
		}).Create(&snapshot).Error
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to save completed sets", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"completedSets": req.CompletedSets})
	}
}
