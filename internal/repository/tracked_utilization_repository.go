package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
)

type TrackedUtilizationRepository struct {
	warehouse
}

func NewTrackedUtilizationRepository(db *gorm.DB, timeout time.Duration) *TrackedUtilizationRepository {
	return &TrackedUtilizationRepository{warehouse: newWarehouse(db, timeout)}
}

const flightSummariesQuery = `WITH flights AS (
	SELECT f.aircraft_id,
		COUNT(*) AS number_of_flights,
		SUM(f.flight_hours) AS total_flight_hours,
		MAX(f.departure_date) AS last_flight_date
	FROM tracked_flights f
	WHERE f.departure_date >= @startDate AND f.departure_date < @endDate
	GROUP BY f.aircraft_id
), ground AS (
	SELECT ge.aircraft_id,
		SUM(DATEDIFF('minute', ge.arrival_date, COALESCE(ge.departure_date, CURRENT_TIMESTAMP())) / 60) AS total_ground_stay_hours
	FROM ground_events ge
	WHERE ge.arrival_date < @endDate AND (ge.departure_date IS NULL OR ge.departure_date >= @startDate)
	GROUP BY ge.aircraft_id
)
SELECT pa.aircraft_id,
	COALESCE(fl.number_of_flights, 0) AS number_of_flights,
	COALESCE(fl.total_flight_hours, 0) AS total_flight_hours,
	COALESCE(gr.total_ground_stay_hours, 0) AS total_ground_stay_hours,
	fl.last_flight_date
FROM portfolio_aircraft pa
LEFT JOIN flights fl ON fl.aircraft_id = pa.aircraft_id
LEFT JOIN ground gr ON gr.aircraft_id = pa.aircraft_id
WHERE pa.portfolio_id = @portfolioId`

// FlightSummaries aggregates tracked flights and ground time per portfolio
// aircraft; aircraft without activity report zeros.
func (r *TrackedUtilizationRepository) FlightSummaries(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.AircraftFlightSummary, error) {
	args := map[string]interface{}{
		"portfolioId": portfolioID,
		"startDate":   rng.From,
		"endDate":     endOfDay(rng.To),
	}

	rows := []model.AircraftFlightSummary{}
	err := r.run(ctx, "flight_summaries", func(tx *gorm.DB) error {
		return raw(tx, flightSummariesQuery, args).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TrackedUtilizationRepository) Flights(ctx context.Context, aircraftID int, rng model.DateRange) ([]model.Flight, error) {
	rows := []model.Flight{}
	err := r.run(ctx, "flights", func(tx *gorm.DB) error {
		return tx.Table("tracked_flights f").
			Select(`f.aircraft_id,
				f.flight_number,
				f.departure_date,
				f.arrival_date,
				f.departure_airport_code AS departure_airport,
				f.arrival_airport_code AS arrival_airport,
				COALESCE(f.flight_hours, 0) AS flight_hours`).
			Where("f.aircraft_id = ?", aircraftID).
			Where("f.departure_date >= ? AND f.departure_date < ?", rng.From, endOfDay(rng.To)).
			Order("f.departure_date DESC").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
