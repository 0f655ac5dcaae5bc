package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

type portfolioStoreMock struct{ mock.Mock }

func (m *portfolioStoreMock) Get(ctx context.Context, id int) (*model.Portfolio, error) {
	args := m.Called(ctx, id)
	portfolio, _ := args.Get(0).(*model.Portfolio)
	return portfolio, args.Error(1)
}

func (m *portfolioStoreMock) ListByUser(ctx context.Context, userID string) ([]model.Portfolio, error) {
	args := m.Called(ctx, userID)
	portfolios, _ := args.Get(0).([]model.Portfolio)
	return portfolios, args.Error(1)
}

func (m *portfolioStoreMock) Create(ctx context.Context, userID, name string, aircraftIDs []int) (int, error) {
	args := m.Called(ctx, userID, name, aircraftIDs)
	return args.Int(0), args.Error(1)
}

func (m *portfolioStoreMock) Update(ctx context.Context, id int, name string, aircraftIDs []int) error {
	return m.Called(ctx, id, name, aircraftIDs).Error(0)
}

func (m *portfolioStoreMock) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type aircraftStoreMock struct{ mock.Mock }

func (m *aircraftStoreMock) Aircraft(ctx context.Context, portfolioID *int, filter model.AircraftFilter) ([]model.Aircraft, error) {
	args := m.Called(ctx, portfolioID, filter)
	aircraft, _ := args.Get(0).([]model.Aircraft)
	return aircraft, args.Error(1)
}

type utilizationStoreMock struct{ mock.Mock }

func (m *utilizationStoreMock) MonthlyUtilization(ctx context.Context, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error) {
	args := m.Called(ctx, req)
	rows, _ := args.Get(0).([]model.MonthlyUtilization)
	return rows, args.Error(1)
}

func (m *utilizationStoreMock) GroupCounts(ctx context.Context, portfolioID *int, group *model.MonthlyUtilizationGroup, groupIDs []int) ([]model.MonthlyUtilizationGroupCount, error) {
	args := m.Called(ctx, portfolioID, group, groupIDs)
	counts, _ := args.Get(0).([]model.MonthlyUtilizationGroupCount)
	return counts, args.Error(1)
}

func (m *utilizationStoreMock) GroupOptions(ctx context.Context, portfolioID *int) (model.GroupOptions, error) {
	args := m.Called(ctx, portfolioID)
	options, _ := args.Get(0).(model.GroupOptions)
	return options, args.Error(1)
}

func (m *utilizationStoreMock) Operators(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error) {
	args := m.Called(ctx, req)
	rows, _ := args.Get(0).([]model.IDName)
	return rows, args.Error(1)
}

func (m *utilizationStoreMock) Lessors(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error) {
	args := m.Called(ctx, req)
	rows, _ := args.Get(0).([]model.IDName)
	return rows, args.Error(1)
}

type trackedUtilizationStoreMock struct{ mock.Mock }

func (m *trackedUtilizationStoreMock) FlightSummaries(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.AircraftFlightSummary, error) {
	args := m.Called(ctx, portfolioID, rng)
	rows, _ := args.Get(0).([]model.AircraftFlightSummary)
	return rows, args.Error(1)
}

func (m *trackedUtilizationStoreMock) Flights(ctx context.Context, aircraftID int, rng model.DateRange) ([]model.Flight, error) {
	args := m.Called(ctx, aircraftID, rng)
	rows, _ := args.Get(0).([]model.Flight)
	return rows, args.Error(1)
}

type groundEventStoreMock struct{ mock.Mock }

func (m *groundEventStoreMock) GroundEvents(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GroundEvent, error) {
	args := m.Called(ctx, portfolioID, rng)
	rows, _ := args.Get(0).([]model.GroundEvent)
	return rows, args.Error(1)
}

func (m *groundEventStoreMock) FilterValues(ctx context.Context, portfolioID int, rng model.DateRange) ([]model.GeographicFilterValue, error) {
	args := m.Called(ctx, portfolioID, rng)
	rows, _ := args.Get(0).([]model.GeographicFilterValue)
	return rows, args.Error(1)
}

type savedSearchStoreMock struct{ mock.Mock }

func (m *savedSearchStoreMock) Get(ctx context.Context, id uuid.UUID) (*model.SavedSearch, error) {
	args := m.Called(ctx, id)
	search, _ := args.Get(0).(*model.SavedSearch)
	return search, args.Error(1)
}

func (m *savedSearchStoreMock) ListByUser(ctx context.Context, userID string, portfolioID *int) ([]model.SavedSearch, error) {
	args := m.Called(ctx, userID, portfolioID)
	rows, _ := args.Get(0).([]model.SavedSearch)
	return rows, args.Error(1)
}

func (m *savedSearchStoreMock) Create(ctx context.Context, search model.SavedSearch) error {
	return m.Called(ctx, search).Error(0)
}

func (m *savedSearchStoreMock) Update(ctx context.Context, search model.SavedSearch) error {
	return m.Called(ctx, search).Error(0)
}

func (m *savedSearchStoreMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type runReportStoreMock struct{ mock.Mock }

func (m *runReportStoreMock) ListBySavedSearch(ctx context.Context, savedSearchID uuid.UUID, limit int) ([]model.SavedSearchRunReport, error) {
	args := m.Called(ctx, savedSearchID, limit)
	rows, _ := args.Get(0).([]model.SavedSearchRunReport)
	return rows, args.Error(1)
}

func (m *runReportStoreMock) Create(ctx context.Context, report model.SavedSearchRunReport) error {
	return m.Called(ctx, report).Error(0)
}

// countingBackend records every cache access.
type countingBackend struct {
	*cache.MemoryBackend
	calls int32
}

func (b *countingBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	atomic.AddInt32(&b.calls, 1)
	return b.MemoryBackend.Get(ctx, key)
}

func (b *countingBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	atomic.AddInt32(&b.calls, 1)
	return b.MemoryBackend.Set(ctx, key, value, ttl)
}

func (b *countingBackend) DeletePrefix(ctx context.Context, prefix string) error {
	atomic.AddInt32(&b.calls, 1)
	return b.MemoryBackend.DeletePrefix(ctx, prefix)
}

func (b *countingBackend) Calls() int32 {
	return atomic.LoadInt32(&b.calls)
}

var fixedNow = time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

type fixture struct {
	portfolioStore *portfolioStoreMock
	aircraftStore  *aircraftStoreMock
	utilStore      *utilizationStoreMock
	trackedStore   *trackedUtilizationStoreMock
	groundStore    *groundEventStoreMock
	searchStore    *savedSearchStoreMock
	reportStore    *runReportStoreMock
	backend        *countingBackend

	portfolios   *PortfoliosService
	utilization  *UtilizationService
	table        *AssetWatchTableService
	groundEvents *GroundEventsService
	tracked      *TrackedUtilizationService
	savedSearch  *SavedSearchService
}

func newFixture() *fixture {
	f := &fixture{
		portfolioStore: &portfolioStoreMock{},
		aircraftStore:  &aircraftStoreMock{},
		utilStore:      &utilizationStoreMock{},
		trackedStore:   &trackedUtilizationStoreMock{},
		groundStore:    &groundEventStoreMock{},
		searchStore:    &savedSearchStoreMock{},
		reportStore:    &runReportStoreMock{},
		backend:        &countingBackend{MemoryBackend: cache.NewMemoryBackend(time.Hour, time.Hour)},
	}
	store := cache.NewStore(f.backend, time.Hour, zerolog.Nop())
	now := func() time.Time { return fixedNow }

	f.portfolios = NewPortfoliosService(f.portfolioStore, f.aircraftStore, store)
	f.utilization = NewUtilizationService(f.portfolios, f.utilStore, store)
	f.table = NewAssetWatchTableService(f.portfolios, f.aircraftStore, f.trackedStore, f.groundStore, store)
	f.table.now = now
	f.groundEvents = NewGroundEventsService(f.portfolios, f.groundStore, store)
	f.groundEvents.now = now
	f.tracked = NewTrackedUtilizationService(f.portfolios, f.aircraftStore, f.trackedStore, store)
	f.tracked.now = now
	f.savedSearch = NewSavedSearchService(f.portfolios, f.searchStore, f.reportStore, f.table, zerolog.Nop())
	f.savedSearch.now = now
	return f
}

func (f *fixture) ownsPortfolio(id int, userID string) {
	f.portfolioStore.On("Get", mock.Anything, id).Return(&model.Portfolio{ID: id, UserID: userID, Name: "Fleet"}, nil)
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.portfolioStore.AssertExpectations(t)
	f.aircraftStore.AssertExpectations(t)
	f.utilStore.AssertExpectations(t)
	f.trackedStore.AssertExpectations(t)
	f.groundStore.AssertExpectations(t)
	f.searchStore.AssertExpectations(t)
	f.reportStore.AssertExpectations(t)
}

var (
	owner    = model.Principal{UserID: "user-1", Email: "owner@example.com"}
	intruder = model.Principal{UserID: "user-2", Email: "intruder@example.com"}
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }
