package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

const (
	RunStatusSucceeded = "Succeeded"
	RunStatusFailed    = "Failed"

	defaultRunReportLimit = 50
)

type SavedSearchService struct {
	portfolios *PortfoliosService
	searches   SavedSearchStore
	reports    RunReportStore
	table      *AssetWatchTableService
	log        zerolog.Logger
	now        func() time.Time
}

func NewSavedSearchService(portfolios *PortfoliosService, searches SavedSearchStore, reports RunReportStore, table *AssetWatchTableService, log zerolog.Logger) *SavedSearchService {
	return &SavedSearchService{
		portfolios: portfolios,
		searches:   searches,
		reports:    reports,
		table:      table,
		log:        log,
		now:        time.Now,
	}
}

func (s *SavedSearchService) List(ctx context.Context, principal model.Principal, portfolioID *int) ([]model.SavedSearch, error) {
	if portfolioID != nil {
		if _, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, *portfolioID); err != nil {
			return nil, err
		}
	}
	return s.searches.ListByUser(ctx, principal.UserID, portfolioID)
}

func (s *SavedSearchService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearch, error) {
	search, err := s.searches.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("saved search %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if !principal.Owns(search.UserID) && !principal.IsAdmin() {
		return nil, fmt.Errorf("saved search %s: %w", id, ErrForbidden)
	}
	return search, nil
}

func (s *SavedSearchService) Create(ctx context.Context, principal model.Principal, input model.SavedSearchInput) (*model.SavedSearch, error) {
	if err := s.validateInput(ctx, principal, input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	search := model.SavedSearch{
		ID:          uuid.New(),
		UserID:      principal.UserID,
		PortfolioID: input.PortfolioID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Parameters:  input.Parameters,
		IsActive:    input.IsActive == nil || *input.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, err
	}
	return &search, nil
}

func (s *SavedSearchService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input model.SavedSearchInput) (*model.SavedSearch, error) {
	search, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, principal, input); err != nil {
		return nil, err
	}

	search.PortfolioID = input.PortfolioID
	search.Name = strings.TrimSpace(input.Name)
	search.Description = input.Description
	search.Parameters = input.Parameters
	if input.IsActive != nil {
		search.IsActive = *input.IsActive
	}
	search.UpdatedAt = s.now().UTC()

	if err := s.searches.Update(ctx, *search); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("saved search %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return search, nil
}

func (s *SavedSearchService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.searches.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("saved search %s: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *SavedSearchService) RunReports(ctx context.Context, principal model.Principal, id uuid.UUID, limit int) ([]model.SavedSearchRunReport, error) {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRunReportLimit
	}
	return s.reports.ListBySavedSearch(ctx, id, limit)
}

// Run executes the saved search against the asset watch table and records
// the outcome as a run report. A failed search is still recorded.
func (s *SavedSearchService) Run(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearchRunReport, error) {
	search, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	report := model.SavedSearchRunReport{
		ID:            uuid.New(),
		SavedSearchID: search.ID,
		RunAt:         s.now().UTC(),
		Status:        RunStatusSucceeded,
	}

	page, runErr := s.table.GetTableData(ctx, principal, search.PortfolioID, search.Parameters, model.Pagination{})
	if runErr != nil {
		report.Status = RunStatusFailed
		s.log.Warn().Err(runErr).Str("saved_search_id", search.ID.String()).Msg("saved search run failed")
	} else {
		report.NumberOfResults = page.TotalCount
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	if runErr != nil {
		return &report, runErr
	}
	return &report, nil
}

func (s *SavedSearchService) validateInput(ctx context.Context, principal model.Principal, input model.SavedSearchInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalidArgument("saved search name is required")
	}
	if input.PortfolioID <= 0 {
		return invalidArgument("portfolio_id is required")
	}
	if _, err := resolveRange(input.Parameters, s.now()); err != nil {
		return err
	}
	_, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, input.PortfolioID)
	return err
}
