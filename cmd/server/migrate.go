package main

import (
	"fmt"

	"github.com/jimdaga/rep-tracker/internal/database"
	"github.com/spf13/cobra"
)

var rollback bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)

		if rollback {
			return database.RollbackMigration(db)
		}
		return database.RunMigrations(db)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&rollback, "down", false, "roll back the most recent migration")
}
