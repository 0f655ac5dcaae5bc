package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-analytics-service/internal/model"
)

var last7Days = model.DateRange{
	From: time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
}

func twoAircraft() []model.Aircraft {
	return []model.Aircraft{
		{AircraftID: 1, SerialNumber: "MSN 1001", Operator: "Aer Lingus"},
		{AircraftID: 2, SerialNumber: "MSN 1002", Operator: "Ryanair"},
	}
}

func (f *fixture) expectTableSources(params model.AssetWatchSearchParameters, aircraft []model.Aircraft, summaries []model.AircraftFlightSummary, events []model.GroundEvent) {
	f.aircraftStore.On("Aircraft", mock.Anything, intPtr(12), params.AircraftFilter()).Return(aircraft, nil).Once()
	f.trackedStore.On("FlightSummaries", mock.Anything, 12, last7Days).Return(summaries, nil).Once()
	f.groundStore.On("GroundEvents", mock.Anything, 12, last7Days).Return(events, nil).Once()
}

func TestGetTableDataMinNoOfFlights(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	params := model.AssetWatchSearchParameters{Period: model.PeriodLast7Days, MinNoOfFlights: intPtr(8)}
	f.expectTableSources(params, twoAircraft(), []model.AircraftFlightSummary{
		{AircraftID: 1, NumberOfFlights: 5, TotalFlightHours: 9},
		{AircraftID: 2, NumberOfFlights: 10, TotalFlightHours: 21},
	}, nil)

	page, err := f.table.GetTableData(context.Background(), owner, 12, params, model.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 2, page.Items[0].AircraftID)
	assert.Equal(t, 10, page.Items[0].NumberOfFlights)
	f.assertExpectations(t)
}

func TestGetTableDataGeographicFilterUsesFilterValues(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	params := model.AssetWatchSearchParameters{Period: model.PeriodLast7Days, RegionCodes: []string{"EU"}}
	f.expectTableSources(params, twoAircraft(), nil, []model.GroundEvent{
		{AircraftID: 1, AirportCode: "DUB", CountryCode: "IE", RegionCode: "EU", GroundStayHours: 12, DepartureDate: timePtr(last7Days.To)},
		{AircraftID: 1, AirportCode: "LHR", CountryCode: "GB", RegionCode: "EU", GroundStayHours: 3, DepartureDate: timePtr(last7Days.To)},
		{AircraftID: 2, AirportCode: "JFK", CountryCode: "US", RegionCode: "NA", GroundStayHours: 40},
	})
	f.groundStore.On("FilterValues", mock.Anything, 12, last7Days).Return([]model.GeographicFilterValue{
		{RegionCode: "EU", CountryCode: "IE", City: "Dublin", AirportCode: "DUB"},
		{RegionCode: "EU", CountryCode: "GB", City: "London", AirportCode: "LHR"},
		{RegionCode: "NA", CountryCode: "US", City: "New York", AirportCode: "JFK"},
	}, nil).Once()

	page, err := f.table.GetTableData(context.Background(), owner, 12, params, model.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].AircraftID)
	assert.Equal(t, 2, page.Items[0].NumberOfGroundEvents)
	assert.Nil(t, page.Items[0].CurrentGroundEventAirport)
	f.assertExpectations(t)
}

func TestGetTableDataIndividualGroundStay(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	params := model.AssetWatchSearchParameters{Period: model.PeriodLast7Days, MinIndividualGroundStay: floatPtr(10)}
	f.expectTableSources(params, twoAircraft(), nil, []model.GroundEvent{
		{AircraftID: 1, AirportCode: "DUB", GroundStayHours: 12, DepartureDate: timePtr(last7Days.To)},
		{AircraftID: 2, AirportCode: "STN", GroundStayHours: 4, DepartureDate: timePtr(last7Days.To)},
	})

	page, err := f.table.GetTableData(context.Background(), owner, 12, params, model.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].AircraftID)
}

func TestGetTableDataCurrentGroundStay(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	params := model.AssetWatchSearchParameters{
		Period:               model.PeriodLast7Days,
		ShowAircraftOnGround: true,
		MinCurrentGroundStay: floatPtr(24),
	}
	f.expectTableSources(params, twoAircraft(), nil, []model.GroundEvent{
		{AircraftID: 1, AirportCode: "DUB", Country: "Ireland", GroundStayHours: 6},
		{AircraftID: 2, AirportCode: "JFK", Country: "United States", GroundStayHours: 50},
	})

	page, err := f.table.GetTableData(context.Background(), owner, 12, params, model.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	row := page.Items[0]
	assert.Equal(t, 2, row.AircraftID)
	assert.Equal(t, "JFK", *row.CurrentGroundEventAirport)
	assert.Equal(t, "United States", *row.CurrentGroundEventCountry)
	assert.InDelta(t, 50, *row.CurrentGroundEventStayHours, 0.001)
}

func TestGetTableDataPaginatesAndCaches(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	params := model.AssetWatchSearchParameters{Period: model.PeriodLast7Days}
	aircraft := append(twoAircraft(), model.Aircraft{AircraftID: 3, SerialNumber: "MSN 1003"})
	f.expectTableSources(params, aircraft, []model.AircraftFlightSummary{
		{AircraftID: 1, TotalGroundStayHours: 10},
		{AircraftID: 2, TotalGroundStayHours: 30},
		{AircraftID: 3, TotalGroundStayHours: 20},
	}, nil)

	ctx := context.Background()
	page := model.Pagination{Skip: 1, Take: 1}
	first, err := f.table.GetTableData(ctx, owner, 12, params, page)
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalCount)
	require.Len(t, first.Items, 1)
	assert.Equal(t, 3, first.Items[0].AircraftID)

	second, err := f.table.GetTableData(ctx, owner, 12, params, page)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	f.assertExpectations(t)
	f.portfolioStore.AssertNumberOfCalls(t, "Get", 2)
}

func TestGetTableDataRejectsIncompleteCustomPeriod(t *testing.T) {
	f := newFixture()
	params := model.AssetWatchSearchParameters{Period: model.PeriodCustom, DateFrom: timePtr(last7Days.From)}

	_, err := f.table.GetTableData(context.Background(), owner, 12, params, model.Pagination{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, f.backend.Calls())
	f.assertExpectations(t)
}

func TestPaginateBeyondEnd(t *testing.T) {
	rows := []model.AssetWatchListDataGridModel{{AircraftID: 1}, {AircraftID: 2}}

	page := paginate(rows, model.Pagination{Skip: 5, Take: 10})
	assert.Equal(t, 2, page.TotalCount)
	assert.Empty(t, page.Items)

	page = paginate(rows, model.Pagination{})
	assert.Len(t, page.Items, 2)
}

func TestGroundEventSummary(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	f.groundStore.On("GroundEvents", mock.Anything, 12, last7Days).Return([]model.GroundEvent{
		{AircraftID: 1, AirportCode: "DUB", CountryCode: "IE", Country: "Ireland", RegionCode: "EU", Region: "Europe", GroundStayHours: 10, DepartureDate: timePtr(last7Days.To)},
		{AircraftID: 1, AirportCode: "LHR", CountryCode: "GB", Country: "United Kingdom", RegionCode: "EU", Region: "Europe", GroundStayHours: 5, DepartureDate: timePtr(last7Days.To)},
		{AircraftID: 2, AirportCode: "JFK", CountryCode: "US", Country: "United States", RegionCode: "NA", Region: "North America", GroundStayHours: 30},
	}, nil).Once()

	summary, err := f.groundEvents.GetSummary(context.Background(), owner, 12, model.AssetWatchSearchParameters{})
	require.NoError(t, err)
	assert.Equal(t, last7Days, summary.Range)
	assert.Equal(t, 3, summary.NumberOfGroundEvents)
	assert.Equal(t, 1, summary.AircraftOnGround)
	require.Len(t, summary.Regions, 2)
	assert.Equal(t, model.GroundEventCount{Code: "EU", Name: "Europe", NumberOfGroundEvents: 2, NumberOfAircraft: 1, TotalGroundStayHours: 15}, summary.Regions[0])
	assert.Equal(t, "NA", summary.Regions[1].Code)
	assert.Len(t, summary.Countries, 3)
	f.assertExpectations(t)
}

func TestGroundEventFilterValuesCached(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	values := []model.GeographicFilterValue{{RegionCode: "EU", CountryCode: "IE", AirportCode: "DUB"}}
	f.groundStore.On("FilterValues", mock.Anything, 12, last7Days).Return(values, nil).Once()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := f.groundEvents.GetFilterValues(ctx, owner, 12, model.AssetWatchSearchParameters{})
		require.NoError(t, err)
		assert.Equal(t, values, got)
	}
	f.assertExpectations(t)
}

func TestGetFlightsRequiresPortfolioAircraft(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	f.aircraftStore.On("Aircraft", mock.Anything, intPtr(12), model.AircraftFilter{AircraftIDs: []int{99}}).
		Return([]model.Aircraft{}, nil)

	_, err := f.tracked.GetFlights(context.Background(), owner, 12, 99, model.AssetWatchSearchParameters{})
	assert.ErrorIs(t, err, ErrNotFound)
	f.assertExpectations(t)
}

func TestGetFlights(t *testing.T) {
	f := newFixture()
	f.ownsPortfolio(12, owner.UserID)
	f.aircraftStore.On("Aircraft", mock.Anything, intPtr(12), model.AircraftFilter{AircraftIDs: []int{1}}).
		Return([]model.Aircraft{{AircraftID: 1}}, nil)
	f.trackedStore.On("Flights", mock.Anything, 1, last7Days).
		Return([]model.Flight{{AircraftID: 1, FlightNumber: "EI123"}}, nil).Once()

	flights, err := f.tracked.GetFlights(context.Background(), owner, 12, 1, model.AssetWatchSearchParameters{})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "EI123", flights[0].FlightNumber)
	f.assertExpectations(t)
}
