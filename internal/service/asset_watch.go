package service

import (
	"time"

	"fleet-analytics-service/internal/cache"
	"fleet-analytics-service/internal/model"
)

const (
	assetWatchArea             = "AssetWatch"
	assetWatchTableKind        = "Table"
	assetWatchSummaryKind      = "Summary"
	assetWatchFilterValuesKind = "FilterValues"
	assetWatchFlightsKind      = "Flights"
)

func resolveRange(params model.AssetWatchSearchParameters, now time.Time) (model.DateRange, error) {
	rng, err := model.ResolveRange(params.Period, params.DateFrom, params.DateTo, now)
	if err != nil {
		return model.DateRange{}, invalidArgument("%v", err)
	}
	return rng, nil
}

// assetWatchKey appends the search parameters in a fixed order.
func assetWatchKey(key *cache.KeyBuilder, params model.AssetWatchSearchParameters, rng model.DateRange) *cache.KeyBuilder {
	return key.
		Date("From", rng.From).
		Date("To", rng.To).
		Strings("Regions", params.RegionCodes).
		Strings("Countries", params.CountryCodes).
		Strings("Cities", params.Cities).
		Strings("Airports", params.AirportCodes).
		Ints("Operators", params.OperatorIDs).
		Ints("Lessors", params.LessorIDs).
		Ints("Series", params.AircraftSeriesIDs).
		Ints("Engines", params.EngineSeriesIDs).
		Ints("Aircraft", params.AircraftIDs).
		Int("MinFlights", params.MinNoOfFlights).
		Float("MinTotalGroundStay", params.MinTotalGroundStay).
		Float("MinIndividualGroundStay", params.MinIndividualGroundStay).
		Float("MaxIndividualGroundStay", params.MaxIndividualGroundStay).
		Float("MinCurrentGroundStay", params.MinCurrentGroundStay).
		Float("MaxCurrentGroundStay", params.MaxCurrentGroundStay).
		Bool("OnGround", params.ShowAircraftOnGround)
}

// locationMatcher resolves the geographic filters against the known filter
// values into the set of airports they select.
type locationMatcher struct {
	active   bool
	airports map[string]struct{}
}

func newLocationMatcher(params model.AssetWatchSearchParameters, values []model.GeographicFilterValue) locationMatcher {
	if !params.HasGeographicFilter() {
		return locationMatcher{}
	}

	regions := toSet(params.RegionCodes)
	countries := toSet(params.CountryCodes)
	cities := toSet(params.Cities)
	airports := toSet(params.AirportCodes)

	matcher := locationMatcher{active: true, airports: map[string]struct{}{}}
	for _, value := range values {
		if !inSet(regions, value.RegionCode) || !inSet(countries, value.CountryCode) ||
			!inSet(cities, value.City) || !inSet(airports, value.AirportCode) {
			continue
		}
		matcher.airports[value.AirportCode] = struct{}{}
	}
	return matcher
}

func (m locationMatcher) matches(event model.GroundEvent) bool {
	if !m.active {
		return true
	}
	_, ok := m.airports[event.AirportCode]
	return ok
}

func groundStayInRange(hours float64, min, max *float64) bool {
	if min != nil && hours < *min {
		return false
	}
	if max != nil && hours > *max {
		return false
	}
	return true
}

// matchingEvents keeps the events passing the geographic and individual
// ground-stay filters.
func matchingEvents(events []model.GroundEvent, matcher locationMatcher, params model.AssetWatchSearchParameters) []model.GroundEvent {
	result := make([]model.GroundEvent, 0, len(events))
	for _, event := range events {
		if !matcher.matches(event) {
			continue
		}
		if !groundStayInRange(event.GroundStayHours, params.MinIndividualGroundStay, params.MaxIndividualGroundStay) {
			continue
		}
		result = append(result, event)
	}
	return result
}

// toSet returns nil for an empty list; inSet treats nil as "any".
func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
