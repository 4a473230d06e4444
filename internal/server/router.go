// Package server assembles the HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/favorites"
	"github.com/jimdaga/rep-tracker/internal/health"
	"github.com/jimdaga/rep-tracker/internal/history"
	"github.com/jimdaga/rep-tracker/internal/logging"
	"github.com/jimdaga/rep-tracker/internal/metrics"
	"github.com/jimdaga/rep-tracker/internal/workouts"
	"github.com/jimdaga/rep-tracker/internal/youtube"
	"gorm.io/gorm"
)

// Deps are the collaborators the router hands to its handlers
type Deps struct {
	DB           *gorm.DB
	Logger       *slog.Logger
	SessionStore sessions.Store
	Provider     auth.IdentityProvider
	Search       *youtube.Service
	FrontendURL  string
}

// NewRouter builds the gin engine with every API route registered
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(apierror.Recovery())
	r.Use(logging.Middleware(deps.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{deps.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(auth.SessionName, deps.SessionStore))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Exercise Catalog API"})
	})
	r.GET("/health", gin.WrapF(health.Handler))
	r.GET("/ready", health.ReadyHandler(deps.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/youtube/search", youtube.SearchHandler(deps.Search))

	// Auth routes (public)
	api.GET("/auth/login", auth.HandleLogin(deps.Provider))
	api.GET("/auth/callback", auth.HandleCallback(deps.DB, deps.Provider, deps.FrontendURL))
	api.GET("/auth/logout", auth.HandleLogout(deps.FrontendURL))
	api.GET("/current_user", auth.HandleCurrentUser(deps.DB))

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.RequireAuth(deps.DB))
	{
		protected.POST("/favorites", favorites.CreateHandler(deps.DB))
		protected.GET("/favorites", favorites.ListHandler(deps.DB))
		protected.DELETE("/favorites/:id", favorites.DeleteHandler(deps.DB))

		protected.POST("/workouts", workouts.CreateHandler(deps.DB))
		protected.GET("/workouts", workouts.ListHandler(deps.DB))
		protected.GET("/workouts/:id", workouts.GetHandler(deps.DB))
		protected.PUT("/workouts/:id", workouts.UpdateHandler(deps.DB))
		protected.DELETE("/workouts/:id", workouts.DeleteHandler(deps.DB))
		protected.GET("/workouts/:id/completed_sets", workouts.GetCompletedSetsHandler(deps.DB))
		protected.POST("/workouts/:id/completed_sets", workouts.SaveCompletedSetsHandler(deps.DB))

		protected.POST("/exercise_history", history.CreateHandler(deps.DB))
		protected.POST("/exercise_history/:exercise", history.CreateHandler(deps.DB))
		protected.GET("/exercise_history", history.ListHandler(deps.DB))
		protected.GET("/exercise_history/:exercise", history.ListHandler(deps.DB))
	}

	return r
}
