package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

type PortfoliosService struct {
	portfolios PortfolioStore
	aircraft   AircraftStore
	cache      *cache.Store
}

func NewPortfoliosService(portfolios PortfolioStore, aircraft AircraftStore, store *cache.Store) *PortfoliosService {
	return &PortfoliosService{portfolios: portfolios, aircraft: aircraft, cache: store}
}

// ValidateAccessToPortfolioOrThrow loads the portfolio and checks that the
// principal owns it. Every portfolio-scoped operation calls it first.
func (s *PortfoliosService) ValidateAccessToPortfolioOrThrow(ctx context.Context, principal model.Principal, portfolioID int) (*model.Portfolio, error) {
	portfolio, err := s.portfolios.Get(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("portfolio %d: %w", portfolioID, ErrNotFound)
		}
		return nil, err
	}
	if !principal.Owns(portfolio.UserID) && !principal.IsAdmin() {
		return nil, fmt.Errorf("portfolio %d: %w", portfolioID, ErrForbidden)
	}
	return portfolio, nil
}

func (s *PortfoliosService) List(ctx context.Context, principal model.Principal) ([]model.Portfolio, error) {
	return s.portfolios.ListByUser(ctx, principal.UserID)
}

func (s *PortfoliosService) Get(ctx context.Context, principal model.Principal, portfolioID int) (*model.Portfolio, error) {
	return s.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID)
}

func (s *PortfoliosService) Create(ctx context.Context, principal model.Principal, input model.PortfolioInput) (*model.Portfolio, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("portfolio name is required")
	}
	id, err := s.portfolios.Create(ctx, principal.UserID, name, input.AircraftIDs)
	if err != nil {
		return nil, err
	}
	return s.portfolios.Get(ctx, id)
}

func (s *PortfoliosService) Update(ctx context.Context, principal model.Principal, portfolioID int, input model.PortfolioInput) (*model.Portfolio, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("portfolio name is required")
	}
	if _, err := s.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return nil, err
	}
	if err := s.portfolios.Update(ctx, portfolioID, name, input.AircraftIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("portfolio %d: %w", portfolioID, ErrNotFound)
		}
		return nil, err
	}
	s.invalidate(ctx, portfolioID)
	return s.portfolios.Get(ctx, portfolioID)
}

func (s *PortfoliosService) Delete(ctx context.Context, principal model.Principal, portfolioID int) error {
	if _, err := s.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return err
	}
	if err := s.portfolios.Delete(ctx, portfolioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("portfolio %d: %w", portfolioID, ErrNotFound)
		}
		return err
	}
	s.invalidate(ctx, portfolioID)
	return nil
}

func (s *PortfoliosService) Aircraft(ctx context.Context, principal model.Principal, portfolioID int, filter model.AircraftFilter) ([]model.Aircraft, error) {
	if _, err := s.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return nil, err
	}
	return s.aircraft.Aircraft(ctx, &portfolioID, filter)
}

// invalidate drops every entry scoped to the portfolio. All of them derive
// from its aircraft membership.
func (s *PortfoliosService) invalidate(ctx context.Context, portfolioID int) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidatePrefix(ctx, portfolioKeyPrefixes(portfolioID)...)
}

func portfolioKeyPrefixes(portfolioID int) []string {
	prefixes := []string{scopeKey(monthlyUtilizationArea, &portfolioID).Prefix()}
	for _, kind := range []string{assetWatchTableKind, assetWatchSummaryKind, assetWatchFilterValuesKind} {
		prefixes = append(prefixes, cache.NewKey(cache.KeyPrefix, assetWatchArea, kind).Int("Portfolio", &portfolioID).Prefix())
	}
	return prefixes
}
