package main

import (
	"log/slog"

	"github.com/jimdaga/rep-tracker/internal/config"
	"github.com/jimdaga/rep-tracker/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rep-tracker",
	Short: "Rep Tracker API server",
	Long: `Rep Tracker serves the workout tracking API: Google login, favorite
exercises, workouts with completed sets, exercise history and a cached
YouTube search proxy.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
