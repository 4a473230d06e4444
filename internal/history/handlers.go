package history

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/jimdaga/rep-tracker/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type entryRequest struct {
	Exercise string          `json:"exercise"`
	Sets     json.RawMessage `json:"sets"`
	Date     string          `json:"date"`
}

// CreateHandler records an exercise history entry. The exercise name comes
// from the :exercise path parameter when the route has one, otherwise from
// the body; both produce the same row.
func CreateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		var req entryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.Validation("Missing exercise, sets or date"))
			return
		}
		if exercise := c.Param("exercise"); exercise != "" {
			req.Exercise = exercise
		}
		if req.Exercise == "" || req.Date == "" || len(req.Sets) == 0 || string(req.Sets) == "null" {
			apierror.Respond(c, apierror.Validation("Missing exercise, sets or date"))
			return
		}
		if err := validation.Validate(validation.Sets, req.Sets); err != nil {
			apierror.Respond(c, apierror.Validation(err.Error()))
			return
		}

		entry := models.ExerciseHistory{
			UserID:   identity.UserID,
			Exercise: req.Exercise,
			Date:     req.Date,
			Sets:     datatypes.JSON(req.Sets),
		}
		if err := db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
			apierror.Respond(c, apierror.Server("Failed to save exercise history", err))
			return
		}

		c.JSON(http.StatusCreated, entry)
	}
}

// ListHandler returns the caller's history ordered by date, optionally
// narrowed to the :exercise path parameter.
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.CurrentIdentity(c)

		query := db.WithContext(c.Request.Context()).Where("user_id = ?", identity.UserID)
		if exercise := c.Param("exercise"); exercise != "" {
			query = query.Where("exercise = ?", exercise)
		}

		entries := []models.ExerciseHistory{}
		if err := query.Order("date").Order("id").Find(&entries).Error; err != nil {
			apierror.Respond(c, apierror.Server("Failed to load exercise history", err))
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}
