package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fleet-analytics-service/internal/model"
)

type utilizationServiceMock struct{ mock.Mock }

func (m *utilizationServiceMock) GetMonthlyUtilization(ctx context.Context, principal model.Principal, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error) {
	args := m.Called(ctx, principal, req)
	rows, _ := args.Get(0).([]model.MonthlyUtilization)
	return rows, args.Error(1)
}

func (m *utilizationServiceMock) GetGroupOptions(ctx context.Context, principal model.Principal, portfolioID *int) (model.GroupOptions, error) {
	args := m.Called(ctx, principal, portfolioID)
	options, _ := args.Get(0).(model.GroupOptions)
	return options, args.Error(1)
}

func (m *utilizationServiceMock) GetOperators(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error) {
	args := m.Called(ctx, principal, req)
	items, _ := args.Get(0).([]model.IDName)
	return items, args.Error(1)
}

func (m *utilizationServiceMock) GetLessors(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error) {
	args := m.Called(ctx, principal, req)
	items, _ := args.Get(0).([]model.IDName)
	return items, args.Error(1)
}

type assetWatchServiceMock struct{ mock.Mock }

func (m *assetWatchServiceMock) GetTableData(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters, page model.Pagination) (model.AssetWatchTablePage, error) {
	args := m.Called(ctx, principal, portfolioID, params, page)
	result, _ := args.Get(0).(model.AssetWatchTablePage)
	return result, args.Error(1)
}

type groundEventsServiceMock struct{ mock.Mock }

func (m *groundEventsServiceMock) GetSummary(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) (model.AssetWatchSummary, error) {
	args := m.Called(ctx, principal, portfolioID, params)
	summary, _ := args.Get(0).(model.AssetWatchSummary)
	return summary, args.Error(1)
}

func (m *groundEventsServiceMock) GetFilterValues(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) ([]model.GeographicFilterValue, error) {
	args := m.Called(ctx, principal, portfolioID, params)
	values, _ := args.Get(0).([]model.GeographicFilterValue)
	return values, args.Error(1)
}

type flightsServiceMock struct{ mock.Mock }

func (m *flightsServiceMock) GetFlights(ctx context.Context, principal model.Principal, portfolioID, aircraftID int, params model.AssetWatchSearchParameters) ([]model.Flight, error) {
	args := m.Called(ctx, principal, portfolioID, aircraftID, params)
	flights, _ := args.Get(0).([]model.Flight)
	return flights, args.Error(1)
}

type portfoliosServiceMock struct{ mock.Mock }

func (m *portfoliosServiceMock) List(ctx context.Context, principal model.Principal) ([]model.Portfolio, error) {
	args := m.Called(ctx, principal)
	portfolios, _ := args.Get(0).([]model.Portfolio)
	return portfolios, args.Error(1)
}

func (m *portfoliosServiceMock) Get(ctx context.Context, principal model.Principal, portfolioID int) (*model.Portfolio, error) {
	args := m.Called(ctx, principal, portfolioID)
	portfolio, _ := args.Get(0).(*model.Portfolio)
	return portfolio, args.Error(1)
}

func (m *portfoliosServiceMock) Create(ctx context.Context, principal model.Principal, input model.PortfolioInput) (*model.Portfolio, error) {
	args := m.Called(ctx, principal, input)
	portfolio, _ := args.Get(0).(*model.Portfolio)
	return portfolio, args.Error(1)
}

func (m *portfoliosServiceMock) Update(ctx context.Context, principal model.Principal, portfolioID int, input model.PortfolioInput) (*model.Portfolio, error) {
	args := m.Called(ctx, principal, portfolioID, input)
	portfolio, _ := args.Get(0).(*model.Portfolio)
	return portfolio, args.Error(1)
}

func (m *portfoliosServiceMock) Delete(ctx context.Context, principal model.Principal, portfolioID int) error {
	return m.Called(ctx, principal, portfolioID).Error(0)
}

func (m *portfoliosServiceMock) Aircraft(ctx context.Context, principal model.Principal, portfolioID int, filter model.AircraftFilter) ([]model.Aircraft, error) {
	args := m.Called(ctx, principal, portfolioID, filter)
	aircraft, _ := args.Get(0).([]model.Aircraft)
	return aircraft, args.Error(1)
}

type savedSearchServiceMock struct{ mock.Mock }

func (m *savedSearchServiceMock) List(ctx context.Context, principal model.Principal, portfolioID *int) ([]model.SavedSearch, error) {
	args := m.Called(ctx, principal, portfolioID)
	searches, _ := args.Get(0).([]model.SavedSearch)
	return searches, args.Error(1)
}

func (m *savedSearchServiceMock) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearch, error) {
	args := m.Called(ctx, principal, id)
	search, _ := args.Get(0).(*model.SavedSearch)
	return search, args.Error(1)
}

func (m *savedSearchServiceMock) Create(ctx context.Context, principal model.Principal, input model.SavedSearchInput) (*model.SavedSearch, error) {
	args := m.Called(ctx, principal, input)
	search, _ := args.Get(0).(*model.SavedSearch)
	return search, args.Error(1)
}

func (m *savedSearchServiceMock) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input model.SavedSearchInput) (*model.SavedSearch, error) {
	args := m.Called(ctx, principal, id, input)
	search, _ := args.Get(0).(*model.SavedSearch)
	return search, args.Error(1)
}

func (m *savedSearchServiceMock) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

func (m *savedSearchServiceMock) RunReports(ctx context.Context, principal model.Principal, id uuid.UUID, limit int) ([]model.SavedSearchRunReport, error) {
	args := m.Called(ctx, principal, id, limit)
	reports, _ := args.Get(0).([]model.SavedSearchRunReport)
	return reports, args.Error(1)
}

func (m *savedSearchServiceMock) Run(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearchRunReport, error) {
	args := m.Called(ctx, principal, id)
	report, _ := args.Get(0).(*model.SavedSearchRunReport)
	return report, args.Error(1)
}

type schemaCheckerMock struct{ mock.Mock }

func (m *schemaCheckerMock) MissingRelations(ctx context.Context, names ...string) ([]string, error) {
	args := m.Called(ctx, names)
	missing, _ := args.Get(0).([]string)
	return missing, args.Error(1)
}
