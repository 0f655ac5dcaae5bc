package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

type SavedSearchesRepository struct {
	warehouse
}

func NewSavedSearchesRepository(db *gorm.DB, timeout time.Duration) *SavedSearchesRepository {
	return &SavedSearchesRepository{warehouse: newWarehouse(db, timeout)}
}

type savedSearchRow struct {
	ID               string
	UserID           string
	PortfolioID      int
	Name             string
	Description      *string
	SearchParameters string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (row savedSearchRow) toModel() (model.SavedSearch, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return model.SavedSearch{}, fmt.Errorf("saved search id %q: %w", row.ID, err)
	}
	var params model.AssetWatchSearchParameters
	if row.SearchParameters != "" {
		if err := json.Unmarshal([]byte(row.SearchParameters), &params); err != nil {
			return model.SavedSearch{}, fmt.Errorf("saved search %s parameters: %w", row.ID, err)
		}
	}
	return model.SavedSearch{
		ID:          id,
		UserID:      row.UserID,
		PortfolioID: row.PortfolioID,
		Name:        row.Name,
		Description: row.Description,
		Parameters:  params,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

const savedSearchColumns = `s.id,
	s.user_id,
	s.portfolio_id,
	s.name,
	s.description,
	TO_JSON(s.search_parameters) AS search_parameters,
	s.is_active,
	s.created_at,
	s.updated_at`

// Get returns gorm.ErrRecordNotFound when the saved search does not exist.
func (r *SavedSearchesRepository) Get(ctx context.Context, id uuid.UUID) (*model.SavedSearch, error) {
	var row savedSearchRow
	err := r.run(ctx, "saved_search_get", func(tx *gorm.DB) error {
		return tx.Table("saved_searches s").
			Select(savedSearchColumns).
			Where("s.id = ?", id.String()).
			Take(&row).Error
	})
	if err != nil {
		return nil, err
	}
	search, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &search, nil
}

func (r *SavedSearchesRepository) ListByUser(ctx context.Context, userID string, portfolioID *int) ([]model.SavedSearch, error) {
	var rows []savedSearchRow
	err := r.run(ctx, "saved_search_list", func(tx *gorm.DB) error {
		query := tx.Table("saved_searches s").
			Select(savedSearchColumns).
			Where("s.user_id = ?", userID)
		if portfolioID != nil {
			query = query.Where("s.portfolio_id = ?", *portfolioID)
		}
		return query.Order("s.created_at DESC").Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.SavedSearch, 0, len(rows))
	for _, row := range rows {
		search, err := row.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, search)
	}
	return result, nil
}

// PARSE_JSON is not allowed in a VALUES clause, hence INSERT ... SELECT.
func (r *SavedSearchesRepository) Create(ctx context.Context, search model.SavedSearch) error {
	params, err := json.Marshal(search.Parameters)
	if err != nil {
		return err
	}
	return r.run(ctx, "saved_search_create", func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO saved_searches
			(id, user_id, portfolio_id, name, description, search_parameters, is_active, created_at, updated_at)
			SELECT ?, ?, ?, ?, ?, PARSE_JSON(?), ?, ?, ?`,
			search.ID.String(), search.UserID, search.PortfolioID, search.Name, search.Description,
			string(params), search.IsActive, search.CreatedAt, search.UpdatedAt).Error
	})
}

func (r *SavedSearchesRepository) Update(ctx context.Context, search model.SavedSearch) error {
	params, err := json.Marshal(search.Parameters)
	if err != nil {
		return err
	}
	return r.run(ctx, "saved_search_update", func(tx *gorm.DB) error {
		result := tx.Exec(`UPDATE saved_searches
			SET portfolio_id = ?, name = ?, description = ?, search_parameters = PARSE_JSON(?), is_active = ?, updated_at = ?
			WHERE id = ?`,
			search.PortfolioID, search.Name, search.Description, string(params), search.IsActive, search.UpdatedAt,
			search.ID.String())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *SavedSearchesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.transaction(ctx, "saved_search_delete", func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM saved_search_run_reports WHERE saved_search_id = ?", id.String()).Error; err != nil {
			return err
		}
		result := tx.Exec("DELETE FROM saved_searches WHERE id = ?", id.String())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type SavedSearchRunReportsRepository struct {
	warehouse
}

func NewSavedSearchRunReportsRepository(db *gorm.DB, timeout time.Duration) *SavedSearchRunReportsRepository {
	return &SavedSearchRunReportsRepository{warehouse: newWarehouse(db, timeout)}
}

type runReportRow struct {
	ID              string
	SavedSearchID   string
	RunAt           time.Time
	Status          string
	NumberOfResults int
	ReportURL       *string
}

func (r *SavedSearchRunReportsRepository) ListBySavedSearch(ctx context.Context, savedSearchID uuid.UUID, limit int) ([]model.SavedSearchRunReport, error) {
	var rows []runReportRow
	err := r.run(ctx, "saved_search_run_reports", func(tx *gorm.DB) error {
		query := tx.Table("saved_search_run_reports rr").
			Select("rr.id, rr.saved_search_id, rr.run_at, rr.status, rr.number_of_results, rr.report_url").
			Where("rr.saved_search_id = ?", savedSearchID.String()).
			Order("rr.run_at DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.SavedSearchRunReport, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("run report id %q: %w", row.ID, err)
		}
		result = append(result, model.SavedSearchRunReport{
			ID:              id,
			SavedSearchID:   savedSearchID,
			RunAt:           row.RunAt,
			Status:          row.Status,
			NumberOfResults: row.NumberOfResults,
			ReportURL:       row.ReportURL,
		})
	}
	return result, nil
}

func (r *SavedSearchRunReportsRepository) Create(ctx context.Context, report model.SavedSearchRunReport) error {
	return r.run(ctx, "saved_search_run_report_create", func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO saved_search_run_reports
			(id, saved_search_id, run_at, status, number_of_results, report_url)
			VALUES (?, ?, ?, ?, ?, ?)`,
			report.ID.String(), report.SavedSearchID.String(), report.RunAt, report.Status,
			report.NumberOfResults, report.ReportURL).Error
	})
}
