package favorites

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/models"
	"gorm.io/gorm"
)

type createRequest struct {
	ExerciseID   string `json:"exercise_id" binding:"required"`
	ExerciseName string `json:"exercise_name" binding:"required"`
}

// CreateHandler saves a favorite exercise for the current user
func CreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.Validation("Missing exercise_id or exercise_name"))
			return
		}

		favorite := models.Favorite{
			ExerciseID:   req.ExerciseID,
			ExerciseName: req.ExerciseName,
			UserID:       identity.UserID,
		}
		if err := db.WithContext(c.Request.Context()).Create(&favorite).Error; err != nil {
			apierror.Respond(c, apierror.Server("Failed to save favorite", err))
			return
		}

		c.JSON(http.StatusCreated, favorite)
	}
}

// ListHandler returns the current user's favorites
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		favorites := []models.Favorite{}
		err := db.WithContext(c.Request.Context()).
			Where("user_id = ?", identity.UserID).
			Order("id").
			Find(&favorites).Error
		if err != nil {
			apierror.Respond(c, apierror.Server("Failed to load favorites", err))
			return
		}

		c.JSON(http.StatusOK, favorites)
	}
}

// DeleteHandler removes one of the current user's favorites. Another
// user's favorite is reported the same as a missing one.
func DeleteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierror.Respond(c, apierror.NotFound("Favorite not found"))
			return
		}

		result := db.WithContext(c.Request.Context()).
			Where("id = ? AND user_id = ?", id, identity.UserID).
			Delete(&models.Favorite{})
		if result.Error != nil {
			apierror.Respond(c, apierror.Server("Failed to delete favorite", result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apierror.Respond(c, apierror.NotFound("Favorite not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Favorite deleted"})
	}
}
