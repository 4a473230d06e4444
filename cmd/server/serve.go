package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/database"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/jimdaga/rep-tracker/internal/server"
	"github.com/jimdaga/rep-tracker/internal/youtube"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			return err
		}

		if cfg.EncryptionKey != "" {
			if err := models.InitEncryption(cfg.EncryptionKey); err != nil {
				return fmt.Errorf("failed to initialize token encryption: %w", err)
			}
		} else {
			slog.Warn("ENCRYPTION_KEY not set. OAuth tokens will be stored unencrypted.")
		}

		auth.InitProviders(cfg)

		store := youtube.NewStore(cfg.RedisURL)
		defer store.Close()

		client := youtube.NewClient(youtube.DefaultBaseURL, cfg.YouTubeAPIKey, cfg.YouTubeStubMode)
		if !client.Configured() {
			slog.Warn("YOUTUBE_API_KEY not set. Video search will return errors.")
		}

		router := server.NewRouter(server.Deps{
			DB:           db,
			Logger:       logger,
			SessionStore: auth.NewSessionStore(cfg),
			Provider:     auth.GothicProvider{Name: "google"},
			Search:       youtube.NewService(client, store),
			FrontendURL:  cfg.FrontendURL,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("Starting server", "addr", srv.Addr, "env", cfg.Env)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		return nil
	},
}
