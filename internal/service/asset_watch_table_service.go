package service

import (
	"context"
	"sort"
	"time"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

type AssetWatchTableService struct {
	portfolios   *PortfoliosService
	aircraft     AircraftStore
	flights      TrackedUtilizationStore
	groundEvents GroundEventStore
	cache        *cache.Store
	now          func() time.Time
}

func NewAssetWatchTableService(portfolios *PortfoliosService, aircraft AircraftStore, flights TrackedUtilizationStore, groundEvents GroundEventStore, store *cache.Store) *AssetWatchTableService {
	return &AssetWatchTableService{
		portfolios:   portfolios,
		aircraft:     aircraft,
		flights:      flights,
		groundEvents: groundEvents,
		cache:        store,
		now:          time.Now,
	}
}

func (s *AssetWatchTableService) GetTableData(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters, page model.Pagination) (model.AssetWatchTablePage, error) {
	if page.Skip < 0 || page.Take < 0 {
		return model.AssetWatchTablePage{}, invalidArgument("skip and take must not be negative")
	}
	rng, err := resolveRange(params, s.now())
	if err != nil {
		return model.AssetWatchTablePage{}, err
	}
	if _, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return model.AssetWatchTablePage{}, err
	}

	key := assetWatchKey(cache.NewKey(cache.KeyPrefix, assetWatchArea, assetWatchTableKind).Int("Portfolio", &portfolioID), params, rng).
		Page(page.Skip, page.Take).
		String()

	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) (model.AssetWatchTablePage, error) {
		rows, err := s.buildRows(ctx, portfolioID, params, rng)
		if err != nil {
			return model.AssetWatchTablePage{}, err
		}
		return paginate(rows, page), nil
	})
}

func (s *AssetWatchTableService) buildRows(ctx context.Context, portfolioID int, params model.AssetWatchSearchParameters, rng model.DateRange) ([]model.AssetWatchListDataGridModel, error) {
	aircraft, err := s.aircraft.Aircraft(ctx, &portfolioID, params.AircraftFilter())
	if err != nil {
		return nil, err
	}
	summaries, err := s.flights.FlightSummaries(ctx, portfolioID, rng)
	if err != nil {
		return nil, err
	}
	events, err := s.groundEvents.GroundEvents(ctx, portfolioID, rng)
	if err != nil {
		return nil, err
	}

	var values []model.GeographicFilterValue
	if params.HasGeographicFilter() {
		if values, err = s.groundEvents.FilterValues(ctx, portfolioID, rng); err != nil {
			return nil, err
		}
	}

	summaryByAircraft := make(map[int]model.AircraftFlightSummary, len(summaries))
	for _, summary := range summaries {
		summaryByAircraft[summary.AircraftID] = summary
	}

	matched := map[int][]model.GroundEvent{}
	for _, event := range matchingEvents(events, newLocationMatcher(params, values), params) {
		matched[event.AircraftID] = append(matched[event.AircraftID], event)
	}
	current := map[int]model.GroundEvent{}
	for _, event := range events {
		if event.IsCurrent() {
			current[event.AircraftID] = event
		}
	}

	eventFiltered := params.HasGeographicFilter() || params.HasIndividualGroundStayFilter()
	rows := make([]model.AssetWatchListDataGridModel, 0, len(aircraft))
	for _, a := range aircraft {
		if eventFiltered && len(matched[a.AircraftID]) == 0 {
			continue
		}

		summary := summaryByAircraft[a.AircraftID]
		row := model.AssetWatchListDataGridModel{
			AircraftID:           a.AircraftID,
			SerialNumber:         a.SerialNumber,
			RegistrationNumber:   a.RegistrationNumber,
			AircraftSeries:       a.AircraftSeries,
			EngineSeries:         a.EngineSeries,
			Operator:             a.Operator,
			Lessor:               a.Lessor,
			NumberOfFlights:      summary.NumberOfFlights,
			TotalFlightHours:     summary.TotalFlightHours,
			TotalGroundStayHours: summary.TotalGroundStayHours,
			NumberOfGroundEvents: len(matched[a.AircraftID]),
			LastFlightDate:       summary.LastFlightDate,
		}
		if event, ok := current[a.AircraftID]; ok {
			airport, country, hours := event.AirportCode, event.Country, event.GroundStayHours
			row.CurrentGroundEventAirport = &airport
			row.CurrentGroundEventCountry = &country
			row.CurrentGroundEventStayHours = &hours
		}

		if keepRow(row, params) {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalGroundStayHours != rows[j].TotalGroundStayHours {
			return rows[i].TotalGroundStayHours > rows[j].TotalGroundStayHours
		}
		return rows[i].SerialNumber < rows[j].SerialNumber
	})
	return rows, nil
}

func keepRow(row model.AssetWatchListDataGridModel, params model.AssetWatchSearchParameters) bool {
	if params.MinNoOfFlights != nil && row.NumberOfFlights < *params.MinNoOfFlights {
		return false
	}
	if params.MinTotalGroundStay != nil && row.TotalGroundStayHours < *params.MinTotalGroundStay {
		return false
	}

	onGround := row.CurrentGroundEventStayHours != nil
	if params.ShowAircraftOnGround && !onGround {
		return false
	}
	if params.MinCurrentGroundStay != nil || params.MaxCurrentGroundStay != nil {
		if !onGround {
			return false
		}
		return groundStayInRange(*row.CurrentGroundEventStayHours, params.MinCurrentGroundStay, params.MaxCurrentGroundStay)
	}
	return true
}

func paginate(rows []model.AssetWatchListDataGridModel, page model.Pagination) model.AssetWatchTablePage {
	result := model.AssetWatchTablePage{Items: []model.AssetWatchListDataGridModel{}, TotalCount: len(rows)}
	if page.Skip >= len(rows) {
		return result
	}
	end := len(rows)
	if page.Take > 0 && page.Skip+page.Take < end {
		end = page.Skip + page.Take
	}
	result.Items = rows[page.Skip:end]
	return result
}
