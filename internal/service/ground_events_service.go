package service

import (
	"context"
	"sort"
	"time"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

type GroundEventsService struct {
	portfolios   *PortfoliosService
	groundEvents GroundEventStore
	cache        *cache.Store
	now          func() time.Time
}

func NewGroundEventsService(portfolios *PortfoliosService, groundEvents GroundEventStore, store *cache.Store) *GroundEventsService {
	return &GroundEventsService{portfolios: portfolios, groundEvents: groundEvents, cache: store, now: time.Now}
}

// GetSummary counts ground events per region and country for the events
// matching the geographic and individual ground-stay filters.
func (s *GroundEventsService) GetSummary(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) (model.AssetWatchSummary, error) {
	rng, err := resolveRange(params, s.now())
	if err != nil {
		return model.AssetWatchSummary{}, err
	}
	if _, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return model.AssetWatchSummary{}, err
	}

	key := cache.NewKey(cache.KeyPrefix, assetWatchArea, assetWatchSummaryKind).
		Int("Portfolio", &portfolioID).
		Date("From", rng.From).
		Date("To", rng.To).
		Strings("Regions", params.RegionCodes).
		Strings("Countries", params.CountryCodes).
		Strings("Cities", params.Cities).
		Strings("Airports", params.AirportCodes).
		Float("MinIndividualGroundStay", params.MinIndividualGroundStay).
		Float("MaxIndividualGroundStay", params.MaxIndividualGroundStay).
		String()

	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) (model.AssetWatchSummary, error) {
		events, err := s.groundEvents.GroundEvents(ctx, portfolioID, rng)
		if err != nil {
			return model.AssetWatchSummary{}, err
		}
		var values []model.GeographicFilterValue
		if params.HasGeographicFilter() {
			if values, err = s.groundEvents.FilterValues(ctx, portfolioID, rng); err != nil {
				return model.AssetWatchSummary{}, err
			}
		}
		return summarize(rng, matchingEvents(events, newLocationMatcher(params, values), params)), nil
	})
}

func (s *GroundEventsService) GetFilterValues(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) ([]model.GeographicFilterValue, error) {
	rng, err := resolveRange(params, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.portfolios.ValidateAccessToPortfolioOrThrow(ctx, principal, portfolioID); err != nil {
		return nil, err
	}

	key := cache.NewKey(cache.KeyPrefix, assetWatchArea, assetWatchFilterValuesKind).
		Int("Portfolio", &portfolioID).
		Date("From", rng.From).
		Date("To", rng.To).
		String()

	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) ([]model.GeographicFilterValue, error) {
		return s.groundEvents.FilterValues(ctx, portfolioID, rng)
	})
}

type groundEventTally struct {
	count    model.GroundEventCount
	aircraft map[int]struct{}
}

func summarize(rng model.DateRange, events []model.GroundEvent) model.AssetWatchSummary {
	regions := map[string]*groundEventTally{}
	countries := map[string]*groundEventTally{}
	onGround := map[int]struct{}{}

	for _, event := range events {
		tally(regions, event.RegionCode, event.Region, event)
		tally(countries, event.CountryCode, event.Country, event)
		if event.IsCurrent() {
			onGround[event.AircraftID] = struct{}{}
		}
	}

	return model.AssetWatchSummary{
		Range:                rng,
		NumberOfGroundEvents: len(events),
		AircraftOnGround:     len(onGround),
		Regions:              sortedCounts(regions),
		Countries:            sortedCounts(countries),
	}
}

func tally(groups map[string]*groundEventTally, code, name string, event model.GroundEvent) {
	group, ok := groups[code]
	if !ok {
		group = &groundEventTally{count: model.GroundEventCount{Code: code, Name: name}, aircraft: map[int]struct{}{}}
		groups[code] = group
	}
	group.count.NumberOfGroundEvents++
	group.count.TotalGroundStayHours += event.GroundStayHours
	group.aircraft[event.AircraftID] = struct{}{}
}

func sortedCounts(groups map[string]*groundEventTally) []model.GroundEventCount {
	result := make([]model.GroundEventCount, 0, len(groups))
	for _, group := range groups {
		count := group.count
		count.NumberOfAircraft = len(group.aircraft)
		result = append(result, count)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].NumberOfGroundEvents != result[j].NumberOfGroundEvents {
			return result[i].NumberOfGroundEvents > result[j].NumberOfGroundEvents
		}
		return result[i].Name < result[j].Name
	})
	return result
}
