package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fleet-analytics-service/internal/config"
	"fleet-analytics-service/internal/db"
	"fleet-analytics-service/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the portfolio and saved search tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appLogger := logger.New(cfg.Environment)

		database, err := db.New(cfg, appLogger)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		if err := db.RunMigrations(cmd.Context(), database, appLogger); err != nil {
			return err
		}
		appLogger.Info().Msg("migrations applied")
		return nil
	},
}
