package main

import (
	"errors"
	"fmt"

	"github.com/jimdaga/rep-tracker/internal/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction() {
			return errors.New("refusing to seed a production database")
		}

		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			return err
		}
		return database.SeedDevData(db)
	},
}
