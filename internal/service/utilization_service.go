package service

import (
	"context"
	"fmt"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
	"fleet-analytics-service/internal/querybuilder"
)

const monthlyUtilizationArea = "MonthlyUtilization"

type UtilizationService struct {
	portfolios  *PortfoliosService
	utilization UtilizationStore
	cache       *cache.Store
}

func NewUtilizationService(portfolios *PortfoliosService, utilization UtilizationStore, store *cache.Store) *UtilizationService {
	return &UtilizationService{portfolios: portfolios, utilization: utilization, cache: store}
}

func (s *UtilizationService) authorize(ctx context.Context, principal model.Principal, portfolioID *int) error {
	if portfolioID == nil {
		return nil
	}
	_, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, *portfolioID)
	return err
}

func (s *UtilizationService) GetMonthlyUtilization(ctx context.Context, principal model.Principal, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error) {
	if req.Group != nil && !req.Group.Valid() {
		return nil, fmt.Errorf("%w: %d", querybuilder.ErrUnknownGroup, int(*req.Group))
	}
	if req.Group == nil && !req.IncludeBaseline {
		return nil, querybuilder.ErrNothingToSelect
	}
	if req.Range.IsZero() || req.Range.To.Before(req.Range.From) {
		return nil, invalidArgument("a valid date range is required")
	}
	if err := s.authorize(ctx, principal, req.PortfolioID); err != nil {
		return nil, err
	}

	rows, err := cache.GetOrLoad(ctx, s.cache, monthlyUtilizationKey(req), func(ctx context.Context) ([]model.MonthlyUtilization, error) {
		return s.utilization.MonthlyUtilization(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	// rows is this caller's own copy, so the backfill never touches the cache.
	if err := s.backfillGroupCounts(ctx, req, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *UtilizationService) backfillGroupCounts(ctx context.Context, req model.MonthlyUtilizationRequest, rows []model.MonthlyUtilization) error {
	var baseline int
	grouped := map[int]int{}

	if req.IncludeBaseline {
		counts, err := s.groupCounts(ctx, req.PortfolioID, nil, nil)
		if err != nil {
			return err
		}
		for _, count := range counts {
			baseline += count.NumberOfAircraft
		}
	}
	if req.Group != nil {
		counts, err := s.groupCounts(ctx, req.PortfolioID, req.Group, req.GroupIDs)
		if err != nil {
			return err
		}
		for _, count := range counts {
			if count.GroupID != nil {
				grouped[*count.GroupID] = count.NumberOfAircraft
			}
		}
	}

	for i := range rows {
		if rows[i].GroupID == nil {
			rows[i].NumberOfAircraftInGroup = baseline
			continue
		}
		rows[i].NumberOfAircraftInGroup = grouped[*rows[i].GroupID]
	}
	return nil
}

func (s *UtilizationService) groupCounts(ctx context.Context, portfolioID *int, group *model.MonthlyUtilizationGroup, groupIDs []int) ([]model.MonthlyUtilizationGroupCount, error) {
	key := scopeKey(monthlyUtilizationArea, portfolioID).Add("GroupCount")
	if group != nil {
		key.Add("Group", group.String()).Ints("Groups", groupIDs)
	}
	return cache.GetOrLoad(ctx, s.cache, key.String(), func(ctx context.Context) ([]model.MonthlyUtilizationGroupCount, error) {
		return s.utilization.GroupCounts(ctx, portfolioID, group, groupIDs)
	})
}

func (s *UtilizationService) GetGroupOptions(ctx context.Context, principal model.Principal, portfolioID *int) (model.GroupOptions, error) {
	if err := s.authorize(ctx, principal, portfolioID); err != nil {
		return model.GroupOptions{}, err
	}
	key := scopeKey(monthlyUtilizationArea, portfolioID).Add("GroupOptions").String()
	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) (model.GroupOptions, error) {
		return s.utilization.GroupOptions(ctx, portfolioID)
	})
}

func (s *UtilizationService) GetOperators(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error) {
	if err := s.validateOrganizationsRequest(ctx, principal, req); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.cache, organizationsKey("Operators", req), func(ctx context.Context) ([]model.IDName, error) {
		return s.utilization.Operators(ctx, req)
	})
}

func (s *UtilizationService) GetLessors(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error) {
	if err := s.validateOrganizationsRequest(ctx, principal, req); err != nil {
		return nil, err
	}
	return cache.GetOrLoad(ctx, s.cache, organizationsKey("Lessors", req), func(ctx context.Context) ([]model.IDName, error) {
		return s.utilization.Lessors(ctx, req)
	})
}

func (s *UtilizationService) validateOrganizationsRequest(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) error {
	if req.Group != nil && !req.Group.Valid() {
		return fmt.Errorf("%w: %d", querybuilder.ErrUnknownGroup, int(*req.Group))
	}
	return s.authorize(ctx, principal, req.PortfolioID)
}

// scopeKey starts a key for the area scoped to a portfolio, or to the global
// benchmark fleet when portfolioID is nil.
func scopeKey(area string, portfolioID *int) *cache.KeyBuilder {
	key := cache.NewKey(cache.KeyPrefix, area)
	if portfolioID == nil {
		return key.Add("GlobalBenchmark")
	}
	return key.Int("Portfolio", portfolioID)
}

func monthlyUtilizationKey(req model.MonthlyUtilizationRequest) string {
	months := model.MonthRange(req.Range)
	key := scopeKey(monthlyUtilizationArea, req.PortfolioID).
		Date("From", months.From).
		Date("To", months.To)
	if req.Group != nil {
		key.Add("Group", req.Group.String()).Ints("Groups", req.GroupIDs)
	}
	return key.
		Int("Operator", req.OperatorID).
		Int("Lessor", req.LessorID).
		Bool("Baseline", req.IncludeBaseline).
		Bool("IncludeEmissions", req.IncludeEmissions).
		Bool("Emissions", req.IsEmissions).
		Bool("HoursAndCycles", req.IsHoursAndCycle).
		String()
}

func organizationsKey(kind string, req model.OrganizationsRequest) string {
	key := scopeKey(monthlyUtilizationArea, req.PortfolioID).Add(kind)
	if req.Group != nil {
		key.Add("Group", req.Group.String()).Ints("Groups", req.GroupIDs)
	}
	return key.String()
}
