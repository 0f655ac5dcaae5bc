package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fleet-analytics-service/internal/auth"
	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/config"
	"fleet-analytics-service/internal/db"
	httphandler "fleet-analytics-service/internal/http"
	"fleet-analytics-service/internal/http/middleware"
	"fleet-analytics-service/internal/logger"
	"fleet-analytics-service/internal/repository"
	"fleet-analytics-service/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return serve(cfg)
	},
}

func serve(cfg *config.Config) error {
	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("failed to connect database")
		return err
	}

	store, closeCache, err := newCacheStore(cfg, appLogger)
	if err != nil {
		appLogger.Error().Err(err).Msg("failed to initialise cache")
		return err
	}
	defer closeCache()

	timeout := cfg.Snowflake.CommandTimeout
	portfoliosRepo := repository.NewPortfoliosRepository(database, timeout)
	aircraftRepo := repository.NewAircraftRepository(database, timeout)
	utilizationRepo := repository.NewUtilizationRepository(database, timeout)
	trackedRepo := repository.NewTrackedUtilizationRepository(database, timeout)
	groundEventsRepo := repository.NewGroundEventsRepository(database, timeout)
	searchesRepo := repository.NewSavedSearchesRepository(database, timeout)
	runReportsRepo := repository.NewSavedSearchRunReportsRepository(database, timeout)
	schemaRepo := repository.NewSchemaRepository(database, timeout)

	portfoliosService := service.NewPortfoliosService(portfoliosRepo, aircraftRepo, store)
	tableService := service.NewAssetWatchTableService(portfoliosService, aircraftRepo, trackedRepo, groundEventsRepo, store)

	handler := httphandler.NewHandler(httphandler.Services{
		Utilization:   service.NewUtilizationService(portfoliosService, utilizationRepo, store),
		AssetWatch:    tableService,
		GroundEvents:  service.NewGroundEventsService(portfoliosService, groundEventsRepo, store),
		Flights:       service.NewTrackedUtilizationService(portfoliosService, aircraftRepo, trackedRepo, store),
		Portfolios:    portfoliosService,
		SavedSearches: service.NewSavedSearchService(portfoliosService, searchesRepo, runReportsRepo, tableService, appLogger),
		Schema:        schemaRepo,
	}, repository.RequiredRelations, appLogger)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, httphandler.RouterOptions{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         appLogger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("cache", cfg.Cache.Backend).Msg("starting fleet analytics service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		return err
	}
	return nil
}

func newCacheStore(cfg *config.Config, log zerolog.Logger) (*cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Address:  cfg.Cache.Redis.Address,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		backend := cache.NewRedisBackend(client, cfg.Cache.Redis.Prefix)
		return cache.NewStore(backend, cfg.Cache.TTL, log), func() { _ = client.Close() }, nil
	default:
		backend := cache.NewMemoryBackend(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		return cache.NewStore(backend, cfg.Cache.TTL, log), func() {}, nil
	}
}
