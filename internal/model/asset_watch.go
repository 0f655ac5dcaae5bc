package model

import "time"

type Aircraft struct {
	AircraftID         int    `json:"aircraft_id"`
	SerialNumber       string `json:"aircraft_serial_number"`
	RegistrationNumber string `json:"aircraft_registration_number"`
	AircraftType       string `json:"aircraft_type"`
	AircraftSeriesID   *int   `json:"aircraft_series_id,omitempty"`
	AircraftSeries     string `json:"aircraft_series"`
	EngineSeriesID     *int   `json:"engine_series_id,omitempty"`
	EngineSeries       string `json:"engine_series"`
	OperatorID         *int   `json:"operator_id,omitempty"`
	Operator           string `json:"operator"`
	LessorID           *int   `json:"lessor_id,omitempty"`
	Lessor             string `json:"lessor"`
	Status             string `json:"status"`
}

type AircraftFilter struct {
	OperatorIDs       []int
	LessorIDs         []int
	AircraftSeriesIDs []int
	EngineSeriesIDs   []int
	AircraftIDs       []int
}

type AircraftFlightSummary struct {
	AircraftID           int        `json:"aircraft_id"`
	NumberOfFlights      int        `json:"number_of_flights"`
	TotalFlightHours     float64    `json:"total_flight_hours"`
	TotalGroundStayHours float64    `json:"total_ground_stay_hours"`
	LastFlightDate       *time.Time `json:"last_flight_date,omitempty"`
}

type GroundEvent struct {
	AircraftID      int        `json:"aircraft_id"`
	ArrivalDate     time.Time  `json:"arrival_date"`
	DepartureDate   *time.Time `json:"departure_date,omitempty"`
	AirportCode     string     `json:"airport_code"`
	AirportName     string     `json:"airport_name"`
	City            string     `json:"city"`
	CountryCode     string     `json:"country_code"`
	Country         string     `json:"country"`
	RegionCode      string     `json:"region_code"`
	Region          string     `json:"region"`
	GroundStayHours float64    `json:"ground_stay_hours"`
}

// IsCurrent reports whether the aircraft is still on the ground.
func (e GroundEvent) IsCurrent() bool {
	return e.DepartureDate == nil
}

type Flight struct {
	AircraftID       int        `json:"aircraft_id"`
	FlightNumber     string     `json:"flight_number"`
	DepartureDate    time.Time  `json:"departure_date"`
	ArrivalDate      *time.Time `json:"arrival_date,omitempty"`
	DepartureAirport string     `json:"departure_airport"`
	ArrivalAirport   string     `json:"arrival_airport"`
	FlightHours      float64    `json:"flight_hours"`
}

type GeographicFilterValue struct {
	RegionCode  string `json:"region_code"`
	Region      string `json:"region"`
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	City        string `json:"city"`
	AirportCode string `json:"airport_code"`
	AirportName string `json:"airport_name"`
}

type AssetWatchSearchParameters struct {
	Period                  AssetWatchPeriod `json:"period"`
	DateFrom                *time.Time       `json:"date_from,omitempty"`
	DateTo                  *time.Time       `json:"date_to,omitempty"`
	RegionCodes             []string         `json:"region_codes,omitempty"`
	CountryCodes            []string         `json:"country_codes,omitempty"`
	Cities                  []string         `json:"cities,omitempty"`
	AirportCodes            []string         `json:"airport_codes,omitempty"`
	OperatorIDs             []int            `json:"operator_ids,omitempty"`
	LessorIDs               []int            `json:"lessor_ids,omitempty"`
	AircraftSeriesIDs       []int            `json:"aircraft_series_ids,omitempty"`
	EngineSeriesIDs         []int            `json:"engine_series_ids,omitempty"`
	AircraftIDs             []int            `json:"aircraft_ids,omitempty"`
	MinNoOfFlights          *int             `json:"min_no_of_flights,omitempty"`
	MinTotalGroundStay      *float64         `json:"min_total_ground_stay,omitempty"`
	MinIndividualGroundStay *float64         `json:"min_individual_ground_stay,omitempty"`
	MaxIndividualGroundStay *float64         `json:"max_individual_ground_stay,omitempty"`
	MinCurrentGroundStay    *float64         `json:"min_current_ground_stay,omitempty"`
	MaxCurrentGroundStay    *float64         `json:"max_current_ground_stay,omitempty"`
	ShowAircraftOnGround    bool             `json:"show_aircraft_on_ground,omitempty"`
}

func (p AssetWatchSearchParameters) HasGeographicFilter() bool {
	return len(p.RegionCodes) > 0 || len(p.CountryCodes) > 0 || len(p.Cities) > 0 || len(p.AirportCodes) > 0
}

func (p AssetWatchSearchParameters) HasIndividualGroundStayFilter() bool {
	return p.MinIndividualGroundStay != nil || p.MaxIndividualGroundStay != nil
}

func (p AssetWatchSearchParameters) AircraftFilter() AircraftFilter {
	return AircraftFilter{
		OperatorIDs:       p.OperatorIDs,
		LessorIDs:         p.LessorIDs,
		AircraftSeriesIDs: p.AircraftSeriesIDs,
		EngineSeriesIDs:   p.EngineSeriesIDs,
		AircraftIDs:       p.AircraftIDs,
	}
}

type Pagination struct {
	Skip int
	Take int
}

type AssetWatchListDataGridModel struct {
	AircraftID                  int        `json:"aircraft_id"`
	SerialNumber                string     `json:"aircraft_serial_number"`
	RegistrationNumber          string     `json:"aircraft_registration_number"`
	AircraftSeries              string     `json:"aircraft_series"`
	EngineSeries                string     `json:"engine_series"`
	Operator                    string     `json:"operator"`
	Lessor                      string     `json:"lessor"`
	NumberOfFlights             int        `json:"number_of_flights"`
	TotalFlightHours            float64    `json:"total_flight_hours"`
	TotalGroundStayHours        float64    `json:"total_ground_stay_hours"`
	NumberOfGroundEvents        int        `json:"number_of_ground_events"`
	LastFlightDate              *time.Time `json:"last_flight_date,omitempty"`
	CurrentGroundEventAirport   *string    `json:"current_ground_event_airport,omitempty"`
	CurrentGroundEventCountry   *string    `json:"current_ground_event_country,omitempty"`
	CurrentGroundEventStayHours *float64   `json:"current_ground_event_stay_hours,omitempty"`
}

type AssetWatchTablePage struct {
	Items      []AssetWatchListDataGridModel `json:"items"`
	TotalCount int                           `json:"total_count"`
}

type GroundEventCount struct {
	Code                 string  `json:"code"`
	Name                 string  `json:"name"`
	NumberOfGroundEvents int     `json:"number_of_ground_events"`
	NumberOfAircraft     int     `json:"number_of_aircraft"`
	TotalGroundStayHours float64 `json:"total_ground_stay_hours"`
}

type AssetWatchSummary struct {
	Range                DateRange          `json:"range"`
	NumberOfGroundEvents int                `json:"number_of_ground_events"`
	AircraftOnGround     int                `json:"aircraft_on_ground"`
	Regions              []GroundEventCount `json:"regions"`
	Countries            []GroundEventCount `json:"countries"`
}
