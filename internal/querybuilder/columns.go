// Package querybuilder assembles the warehouse SQL used by the utilization reports.
//
// Builders are pure: they take a small params struct and return SQL with gorm
// named placeholders (@portfolioId, @filterIds, ...). Binding and execution
// belong to the repository layer.
package querybuilder

import (
	"errors"
	"fmt"
	"strings"

	"fleet-analytics-service/internal/model"
)

var (
	ErrUnknownGroup    = errors.New("unknown monthly utilization group")
	ErrNothingToSelect = errors.New("either a group or the baseline must be requested")
)

const (
	BaselineGroupName = "All aircraft"

	filterIDsCTE = `WITH filter_ids AS (
	SELECT TRY_TO_NUMBER(TRIM(f.value)) AS id
	FROM TABLE(SPLIT_TO_TABLE(@filterIds, ',')) f
)`

	portfolioJoin   = "LEFT JOIN portfolio_aircraft pa ON pa.aircraft_id = a.aircraft_id AND pa.portfolio_id = @portfolioId"
	portfolioFilter = "pa.aircraft_id IS NOT NULL"
	operatorFilter  = "(@operatorId IS NULL OR a.operator_organization_id = @operatorId)"
	lessorFilter    = "(@lessorId IS NULL OR a.manager_organization_id = @lessorId)"
)

type groupColumns struct {
	ID   string
	Name string
}

func columnsFor(group model.MonthlyUtilizationGroup) (groupColumns, error) {
	switch group {
	case model.GroupMarketClass:
		return groupColumns{ID: "a.market_class_id", Name: "a.market_class"}, nil
	case model.GroupAircraftFamily:
		return groupColumns{ID: "a.aircraft_family_id", Name: "a.aircraft_family"}, nil
	case model.GroupAircraftType:
		return groupColumns{ID: "a.aircraft_type_id", Name: "a.aircraft_type"}, nil
	case model.GroupAircraftSeries:
		return groupColumns{ID: "a.aircraft_series_id", Name: "a.aircraft_series"}, nil
	case model.GroupAircraftSerialNumber:
		return groupColumns{ID: "a.aircraft_id", Name: "a.aircraft_serial_number"}, nil
	default:
		return groupColumns{}, fmt.Errorf("%w: %d", ErrUnknownGroup, int(group))
	}
}

// FilterPredicate is the single predicate narrowing rows to the requested group ids.
func FilterPredicate(idColumn string) string {
	return idColumn + " IN (SELECT id FROM filter_ids)"
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, "\n\tAND ")
}

// Normalize collapses whitespace so SQL can be compared independent of layout.
func Normalize(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
