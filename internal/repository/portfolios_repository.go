package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

type PortfoliosRepository struct {
	warehouse
}

func NewPortfoliosRepository(db *gorm.DB, timeout time.Duration) *PortfoliosRepository {
	return &PortfoliosRepository{warehouse: newWarehouse(db, timeout)}
}

const portfolioColumns = `p.id,
	p.name,
	p.user_id,
	COUNT(pa.aircraft_id) AS number_of_aircraft,
	p.created_at,
	p.updated_at`

func (r *PortfoliosRepository) portfolios(tx *gorm.DB) *gorm.DB {
	return tx.Table("portfolios p").
		Select(portfolioColumns).
		Joins("LEFT JOIN portfolio_aircraft pa ON pa.portfolio_id = p.id").
		Group("p.id, p.name, p.user_id, p.created_at, p.updated_at")
}

// Get returns gorm.ErrRecordNotFound when the portfolio does not exist.
func (r *PortfoliosRepository) Get(ctx context.Context, id int) (*model.Portfolio, error) {
	var portfolio model.Portfolio
	err := r.run(ctx, "portfolio_get", func(tx *gorm.DB) error {
		return r.portfolios(tx).Where("p.id = ?", id).Take(&portfolio).Error
	})
	if err != nil {
		return nil, err
	}
	return &portfolio, nil
}

func (r *PortfoliosRepository) ListByUser(ctx context.Context, userID string) ([]model.Portfolio, error) {
	rows := []model.Portfolio{}
	err := r.run(ctx, "portfolio_list", func(tx *gorm.DB) error {
		return r.portfolios(tx).Where("p.user_id = ?", userID).Order("p.name").Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PortfoliosRepository) Create(ctx context.Context, userID, name string, aircraftIDs []int) (int, error) {
	var id int
	err := r.transaction(ctx, "portfolio_create", func(tx *gorm.DB) error {
		if err := tx.Raw("SELECT portfolio_id_seq.NEXTVAL AS id").Scan(&id).Error; err != nil {
			return err
		}
		err := tx.Exec(`INSERT INTO portfolios (id, name, user_id, created_at, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP(), CURRENT_TIMESTAMP())`, id, name, userID).Error
		if err != nil {
			return err
		}
		return insertPortfolioAircraft(tx, id, aircraftIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update renames the portfolio and replaces its aircraft when aircraftIDs is non-nil.
func (r *PortfoliosRepository) Update(ctx context.Context, id int, name string, aircraftIDs []int) error {
	return r.transaction(ctx, "portfolio_update", func(tx *gorm.DB) error {
		result := tx.Exec("UPDATE portfolios SET name = ?, updated_at = CURRENT_TIMESTAMP() WHERE id = ?", name, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if aircraftIDs == nil {
			return nil
		}
		if err := tx.Exec("DELETE FROM portfolio_aircraft WHERE portfolio_id = ?", id).Error; err != nil {
			return err
		}
		return insertPortfolioAircraft(tx, id, aircraftIDs)
	})
}

func (r *PortfoliosRepository) Delete(ctx context.Context, id int) error {
	return r.transaction(ctx, "portfolio_delete", func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM portfolio_aircraft WHERE portfolio_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Exec("DELETE FROM portfolios WHERE id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func insertPortfolioAircraft(tx *gorm.DB, portfolioID int, aircraftIDs []int) error {
	seen := make(map[int]struct{}, len(aircraftIDs))
	for _, aircraftID := range aircraftIDs {
		if _, ok := seen[aircraftID]; ok {
			continue
		}
		seen[aircraftID] = struct{}{}
		err := tx.Exec("INSERT INTO portfolio_aircraft (portfolio_id, aircraft_id) VALUES (?, ?)", portfolioID, aircraftID).Error
		if err != nil {
			return err
		}
	}
	return nil
}
