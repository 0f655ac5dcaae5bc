package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

type AircraftRepository struct {
	warehouse
}

func NewAircraftRepository(db *gorm.DB, timeout time.Duration) *AircraftRepository {
	return &AircraftRepository{warehouse: newWarehouse(db, timeout)}
}

const aircraftColumns = `a.aircraft_id,
	a.aircraft_serial_number AS serial_number,
	a.aircraft_registration_number AS registration_number,
	a.aircraft_type,
	a.aircraft_series_id,
	a.aircraft_series,
	a.engine_series_id,
	a.engine_series,
	a.operator_organization_id AS operator_id,
	a.operator_organization AS operator,
	a.manager_organization_id AS lessor_id,
	a.manager_organization AS lessor,
	a.aircraft_status AS status`

// Aircraft lists aircraft of a portfolio, or of the whole fleet when
// portfolioID is nil, narrowed by the non-empty filter lists.
func (r *AircraftRepository) Aircraft(ctx context.Context, portfolioID *int, filter model.AircraftFilter) ([]model.Aircraft, error) {
	rows := []model.Aircraft{}
	err := r.run(ctx, "aircraft", func(tx *gorm.DB) error {
		query := tx.Table("aircraft a").Select(aircraftColumns)
		if portfolioID != nil {
			query = query.
				Joins("JOIN portfolio_aircraft pa ON pa.aircraft_id = a.aircraft_id").
				Where("pa.portfolio_id = ?", *portfolioID)
		}
		query = applyAircraftFilter(query, filter)
		return query.Order("a.aircraft_serial_number").Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applyAircraftFilter(query *gorm.DB, filter model.AircraftFilter) *gorm.DB {
	if len(filter.OperatorIDs) > 0 {
		query = query.Where("a.operator_organization_id IN ?", filter.OperatorIDs)
	}
	if len(filter.LessorIDs) > 0 {
		query = query.Where("a.manager_organization_id IN ?", filter.LessorIDs)
	}
	if len(filter.AircraftSeriesIDs) > 0 {
		query = query.Where("a.aircraft_series_id IN ?", filter.AircraftSeriesIDs)
	}
	if len(filter.EngineSeriesIDs) > 0 {
		query = query.Where("a.engine_series_id IN ?", filter.EngineSeriesIDs)
	}
	if len(filter.AircraftIDs) > 0 {
		query = query.Where("a.aircraft_id IN ?", filter.AircraftIDs)
	}
	return query
}
