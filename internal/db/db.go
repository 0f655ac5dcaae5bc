package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-analytics-service/internal/config"
)

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dsn, err := SnowflakeDSN(cfg.Snowflake)
	if err != nil {
		return nil, err
	}

	database, err := Open(NewSnowflakeDialector(dsn, nil), log)
	if err != nil {
		return nil, fmt.Errorf("open snowflake: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Snowflake.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Snowflake.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Snowflake.ConnMaxLifetime)

	log.Info().
		Str("account", cfg.Snowflake.Account).
		Str("database", cfg.Snowflake.Database).
		Str("schema", cfg.Snowflake.Schema).
		Str("warehouse", cfg.Snowflake.Warehouse).
		Msg("connected to snowflake")

	return database, nil
}

func Open(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(log),
		NamingStrategy:         upperCaseNamer{},
		SkipDefaultTransaction: true,
	})
}
