package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

var RequiredRelations = []string{
	"aircraft",
	"aircraft_monthly_utilization",
	"tracked_flights",
	"ground_events",
	"portfolios",
	"portfolio_aircraft",
	"saved_searches",
	"saved_search_run_reports",
}

type SchemaRepository struct {
	warehouse
}

func NewSchemaRepository(db *gorm.DB, timeout time.Duration) *SchemaRepository {
	return &SchemaRepository{warehouse: newWarehouse(db, timeout)}
}

func (r *SchemaRepository) MissingRelations(ctx context.Context, names ...string) ([]string, error) {
	var missing []string
	for _, name := range names {
		exists, err := r.relationExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
