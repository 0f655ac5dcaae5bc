package service

import (
	"context"
	"fmt"
	"time"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

type TrackedUtilizationService struct {
	portfolios *PortfoliosService
	aircraft   AircraftStore
	flights    TrackedUtilizationStore
	cache      *cache.Store
	now        func() time.Time
}

func NewTrackedUtilizationService(portfolios *PortfoliosService, aircraft AircraftStore, flights TrackedUtilizationStore, store *cache.Store) *TrackedUtilizationService {
	return &TrackedUtilizationService{portfolios: portfolios, aircraft: aircraft, flights: flights, cache: store, now: time.Now}
}

// GetFlights lists the tracked flights of one aircraft, which must belong to
// the portfolio.
func (s *TrackedUtilizationService) GetFlights(ctx context.Context, principal model.Principal, portfolioID, aircraftID int, params model.AssetWatchSearchParameters) ([]model.Flight, error) {
	rng, err := resolveRange(params, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return nil, err
	}

	members, err := s.aircraft.Aircraft(ctx, &portfolioID, model.AircraftFilter{AircraftIDs: []int{aircraftID}})
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("aircraft %d in portfolio %d: %w", aircraftID, portfolioID, ErrNotFound)
	}

	key := cache.NewKey(cache.KeyPrefix, assetWatchArea, assetWatchFlightsKind).
		Int("Aircraft", &aircraftID).
		Date("From", rng.From).
		Date("To", rng.To).
		String()

	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) ([]model.Flight, error) {
		return s.flights.Flights(ctx, aircraftID, rng)
	})
}
