package service

import (
	"context"

	"github.com/google/uuid"

	"fleet-analytics-service/internal/model"
)

type PortfolioStore interface {
	Get(ctx context.Context, id int) (*model.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]model.Portfolio, error)
	Create(ctx context.Context, userID, name string, aircraftIDs []int) (int, error)
	Update(ctx context.Context, id int, name string, aircraftIDs []int) error
	Delete(ctx context.Context, id int) error
}

type AircraftStore interface {
	Aircraft(ctx context.Context, portfolioID *int, filter model.AircraftFilter) ([]model.Aircraft, error)
}

type UtilizationStore interface {
	MonthlyUtilization(ctx context.Context, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error)
	GroupCounts(ctx context.Context, portfolioID *int, group *model.MonthlyUtilizationGroup, groupIDs []int) ([]model.MonthlyUtilizationGroupCount, error)
	GroupOptions(ctx context.Context, portfolioID *int) (model.GroupOptions, error)
	Operators(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error)
	Lessors(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error)
}

type TrackedUtilizationStore interface {
	FlightSummaries(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.AircraftFlightSummary, error)
	Flights(ctx context.Context, aircraftID int, rng model.DateRange) ([]model.Flight, error)
}

type GroundEventStore interface {
	GroundEvents(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GroundEvent, error)
	FilterValues(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GeographicFilterValue, error)
}

type SavedSearchStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.SavedSearch, error)
	ListByUser(ctx context.Context, userID string, portfolioID *int) ([]model.SavedSearch, error)
	Create(ctx context.Context, search model.SavedSearch) error
	Update(ctx context.Context, search model.SavedSearch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RunReportStore interface {
	ListBySavedSearch(ctx context.Context, savedSearchID uuid.UUID, limit int) ([]model.SavedSearchRunReport, error)
	Create(ctx context.Context, report model.SavedSearchRunReport) error
}
