package model

import (
	"fmt"
	"strconv"
	"strings"
)

type MonthlyUtilizationGroup int

const (
	GroupMarketClass MonthlyUtilizationGroup = iota
	GroupAircraftFamily
	GroupAircraftType
	GroupAircraftSeries
	GroupAircraftSerialNumber
)

var monthlyUtilizationGroupNames = map[MonthlyUtilizationGroup]string{
	GroupMarketClass:          "MarketClass",
	GroupAircraftFamily:       "AircraftFamily",
	GroupAircraftType:         "AircraftType",
	GroupAircraftSeries:       "AircraftSeries",
	GroupAircraftSerialNumber: "AircraftSerialNumber",
}

// MonthlyUtilizationGroups lists every grouping dimension in display order.
var MonthlyUtilizationGroups = []MonthlyUtilizationGroup{
	GroupMarketClass,
	GroupAircraftFamily,
	GroupAircraftType,
	GroupAircraftSeries,
	GroupAircraftSerialNumber,
}

func (g MonthlyUtilizationGroup) String() string {
	if name, ok := monthlyUtilizationGroupNames[g]; ok {
		return name
	}
	return "MonthlyUtilizationGroup(" + strconv.Itoa(int(g)) + ")"
}

func (g MonthlyUtilizationGroup) Valid() bool {
	_, ok := monthlyUtilizationGroupNames[g]
	return ok
}

// ParseMonthlyUtilizationGroup accepts a dimension name (case-insensitive) or its numeric value.
func ParseMonthlyUtilizationGroup(raw string) (MonthlyUtilizationGroup, error) {
	value := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(value); err == nil {
		g := MonthlyUtilizationGroup(n)
		if !g.Valid() {
			return 0, fmt.Errorf("unknown monthly utilization group %d", n)
		}
		return g, nil
	}
	for g, name := range monthlyUtilizationGroupNames {
		if strings.EqualFold(name, value) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown monthly utilization group %q", raw)
}

type MonthlyUtilization struct {
	Group                   string   `json:"group"`
	GroupID                 *int     `json:"group_id,omitempty"`
	Year                    int      `json:"year"`
	Month                   int      `json:"month"`
	TotalHours              *float64 `json:"total_hours,omitempty"`
	TotalCycles             *float64 `json:"total_cycles,omitempty"`
	AverageHours            *float64 `json:"average_hours,omitempty"`
	AverageCycles           *float64 `json:"average_cycles,omitempty"`
	AverageHoursPerCycle    *float64 `json:"average_hours_per_cycle,omitempty"`
	TotalCO2EmissionsKg     *float64 `json:"total_co2_emissions_kg,omitempty"`
	AverageCO2EmissionsKg   *float64 `json:"average_co2_emissions_kg,omitempty"`
	AverageCO2KgPerHour     *float64 `json:"average_co2_kg_per_hour,omitempty"`
	AverageCO2GPerASM       *float64 `json:"average_co2_g_per_asm,omitempty"`
	AverageCO2GPerASK       *float64 `json:"average_co2_g_per_ask,omitempty"`
	NumberOfAircraft        int      `json:"number_of_aircraft"`
	NumberOfAircraftInGroup int      `json:"number_of_aircraft_in_group"`
}

type MonthlyUtilizationGroupCount struct {
	GroupID          *int `json:"group_id,omitempty"`
	NumberOfAircraft int  `json:"number_of_aircraft"`
}

type MonthlyUtilizationRequest struct {
	PortfolioID      *int
	Range            DateRange
	Group            *MonthlyUtilizationGroup
	GroupIDs         []int
	OperatorID       *int
	LessorID         *int
	IncludeBaseline  bool
	IncludeEmissions bool
	IsEmissions      bool
	IsHoursAndCycle  bool
}

func (r MonthlyUtilizationRequest) IsGlobalFleet() bool {
	return r.PortfolioID == nil
}

type GroupOption struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GroupOptions struct {
	MarketClasses         []IDName `json:"market_classes"`
	AircraftFamilies      []IDName `json:"aircraft_families"`
	AircraftTypes         []IDName `json:"aircraft_types"`
	AircraftSeries        []IDName `json:"aircraft_series"`
	AircraftSerialNumbers []IDName `json:"aircraft_serial_numbers,omitempty"`
}

type IDName struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type OrganizationsRequest struct {
	PortfolioID *int
	Group       *MonthlyUtilizationGroup
	GroupIDs    []int
}
