package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

type GroundEventsRepository struct {
	warehouse
}

func NewGroundEventsRepository(db *gorm.DB, timeout time.Duration) *GroundEventsRepository {
	return &GroundEventsRepository{warehouse: newWarehouse(db, timeout)}
}

// overlapping selects events that started before the range ended and had not
// departed before it started.
func overlapping(query *gorm.DB, rng model.DateRange) *gorm.DB {
	return query.Where("ge.arrival_date < ? AND (ge.departure_date IS NULL OR ge.departure_date >= ?)", endOfDay(rng.To), rng.From)
}

func (r *GroundEventsRepository) GroundEvents(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GroundEvent, error) {
	rows := []model.GroundEvent{}
	err := r.run(ctx, "ground_events", func(tx *gorm.DB) error {
		query := tx.Table("ground_events ge").
			Select(`ge.aircraft_id,
				ge.arrival_date,
				ge.departure_date,
				ge.airport_code,
				ge.airport_name,
				ge.city,
				ge.country_code,
				ge.country,
				ge.region_code,
				ge.region,
				DATEDIFF('minute', ge.arrival_date, COALESCE(ge.departure_date, CURRENT_TIMESTAMP())) / 60 AS ground_stay_hours`).
			Joins("JOIN portfolio_aircraft pa ON pa.aircraft_id = ge.aircraft_id").
			Where("pa.portfolio_id = ?", portfolioID)
		return overlapping(query, rng).
			Order("ge.aircraft_id, ge.arrival_date").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GroundEventsRepository) FilterValues(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GeographicFilterValue, error) {
	rows := []model.GeographicFilterValue{}
	err := r.run(ctx, "ground_event_filter_values", func(tx *gorm.DB) error {
		query := tx.Table("ground_events ge").
			Select(`DISTINCT ge.region_code,
				ge.region,
				ge.country_code,
				ge.country,
				ge.city,
				ge.airport_code,
				ge.airport_name`).
			Joins("JOIN portfolio_aircraft pa ON pa.aircraft_id = ge.aircraft_id").
			Where("pa.portfolio_id = ?", portfolioID)
		return overlapping(query, rng).
			Order("ge.region, ge.country, ge.city, ge.airport_code").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
