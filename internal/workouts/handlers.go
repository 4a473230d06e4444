package workouts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/jimdaga/rep-tracker/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type createRequest struct {
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Notes     *string         `json:"notes"`
	Exercises json.RawMessage `json:"exercises"`
}

// updateRequest distinguishes absent fields (nil) from present ones so an
// update only touches what the client sent.
type updateRequest struct {
	Name      *string         `json:"name"`
	Date      *string         `json:"date"`
	Notes     *string         `json:"notes"`
	Exercises json.RawMessage `json:"exercises"`
}

var emptyExercises = datatypes.JSON("[]")

// CreateHandler stores a new workout for the current user
func CreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.Validation("Invalid JSON body"))
			return
		}
		if req.Name == "" || req.Date == "" {
			apierror.Respond(c, apierror.Validation("Missing name or date"))
			return
		}

		exercises := emptyExercises
		if present(req.Exercises) {
			if err := validation.Validate(validation.Exercises, req.Exercises); err != nil {
				apierror.Respond(c, apierror.Validation(err.Error()))
				return
			}
			exercises = datatypes.JSON(req.Exercises)
		}

		workout := models.Workout{
			UserID:    identity.UserID,
			Name:      req.Name,
			Date:      req.Date,
			Notes:     req.Notes,
			Exercises: exercises,
		}
		if err := db.WithContext(c.Request.Context()).Create(&workout).Error; err != nil {
			apierror.Respond(c, apierror.Server("Failed to create workout", err))
			return
		}

		c.JSON(http.StatusCreated, workout)
	}
}

// ListHandler returns the current user's workouts, newest date first
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		workouts := []models.Workout{}
		err := db.WithContext(c.Request.Context()).
			Where("user_id = ?", identity.UserID).
			Order("date DESC").
			Order("created_at DESC").
			Find(&workouts).Error
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to load workouts", err))
			return
		}

		c.JSON(http.StatusOK, workouts)
	}
}

// GetHandler returns a single workout
func GetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		workout, err := findWorkout(c.Request.Context(), db, c.Param("id"), identity.UserID)
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, workout)
	}
}

// UpdateHandler merges the request into an existing workout. Fields absent
// from the body keep their stored values.
func UpdateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		var req updateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.Validation("Invalid JSON body"))
			return
		}
		if (req.Name != nil && *req.Name == "") || (req.Date != nil && *req.Date == "") {
			apierror.Respond(c, apierror.Validation("Missing name or date"))
			return
		}
		if present(req.Exercises) {
			if err := validation.Validate(validation.Exercises, req.Exercises); err != nil {
				apierror.Respond(c, apierror.Validation(err.Error()))
				return
			}
		}

		workout, err := findWorkout(c.Request.Context(), db, c.Param("id"), identity.UserID)
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		if req.Name != nil {
			workout.Name = *req.Name
		}
		if req.Date != nil {
			workout.Date = *req.Date
		}
		if req.Notes != nil {
			workout.Notes = req.Notes
		}
		if present(req.Exercises) {
			workout.Exercises = datatypes.JSON(req.Exercises)
		}

		if err := db.WithContext(c.Request.Context()).Save(workout).Error; err != nil {
			apierror.Respond(c, apierror.Server("Failed to update workout", err))
			return
		}

		c.JSON(http.StatusOK, workout)
	}
}

// DeleteHandler removes a workout and its completed-set snapshots
func DeleteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			result := tx.Where("id = ? AND user_id = ?", c.Param("id"), identity.UserID).Delete(&models.Workout{})
			if result.Error != nil {
				return apierror.Server("Failed to delete workout", result.Error)
			}
			if result.RowsAffected == 0 {
				return apierror.NotFound("Workout not found")
			}
			if err := tx.Where("workout_id = ?", c.Param("id")).Delete(&models.CompletedSet{}).Error; err != nil {
				return apierror.Server("Failed to delete completed sets", err)
			}
			return nil
		})
		if err != nil {
			apierror.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
	}
}

// findWorkout loads a workout owned by userID. A workout owned by someone
// else is reported as not found.
func findWorkout(ctx context.Context, db *gorm.DB, id string, userID uint) (*models.Workout, error) {
	var workout models.Workout
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&workout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Workout not found")
	}
	if err != nil {
		return nil, apierror.Server("Failed to load workout", fmt.Errorf("workout %s: %w", id, err))
	}
	return &workout, nil
}

// present reports whether a raw JSON field was sent with a non-null value
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
