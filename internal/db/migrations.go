package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Only tables owned by this service are migrated here. Aircraft, utilization,
// tracked flight and ground event data is loaded into the warehouse upstream.
var migrationStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS portfolio_id_seq START = 1 INCREMENT = 1`,
	`CREATE TABLE IF NOT EXISTS portfolios (
		id NUMBER(38,0) NOT NULL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		user_id VARCHAR(100) NOT NULL,
		created_at TIMESTAMP_NTZ NOT NULL DEFAULT CURRENT_TIMESTAMP(),
		updated_at TIMESTAMP_NTZ NOT NULL DEFAULT CURRENT_TIMESTAMP()
	)`,
	`CREATE TABLE IF NOT EXISTS portfolio_aircraft (
		portfolio_id NUMBER(38,0) NOT NULL,
		aircraft_id NUMBER(38,0) NOT NULL,
		created_at TIMESTAMP_NTZ NOT NULL DEFAULT CURRENT_TIMESTAMP(),
		PRIMARY KEY (portfolio_id, aircraft_id)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_searches (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		user_id VARCHAR(100) NOT NULL,
		portfolio_id NUMBER(38,0) NOT NULL,
		name VARCHAR(200) NOT NULL,
		description VARCHAR(1000),
		search_parameters VARIANT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP_NTZ NOT NULL DEFAULT CURRENT_TIMESTAMP(),
		updated_at TIMESTAMP_NTZ NOT NULL DEFAULT CURRENT_TIMESTAMP()
	)`,
	`CREATE TABLE IF NOT EXISTS saved_search_run_reports (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		saved_search_id VARCHAR(36) NOT NULL,
		run_at TIMESTAMP_NTZ NOT NULL,
		status VARCHAR(20) NOT NULL,
		number_of_results NUMBER(38,0) NOT NULL DEFAULT 0,
		report_url VARCHAR(2000)
	)`,
}

func RunMigrations(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	for i, stmt := range migrationStatements {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		log.Debug().Int("step", i+1).Msg("migration applied")
	}
	log.Info().Int("statements", len(migrationStatements)).Msg("migrations complete")
	return nil
}
