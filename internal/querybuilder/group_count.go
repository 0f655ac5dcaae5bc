package querybuilder

import (
	"strings"

	"fleet-analytics-service/internal/model"
)

type GroupParams struct {
	Group         *model.MonthlyUtilizationGroup
	IsGlobalFleet bool
}

// BuildGroupCountQuery counts aircraft per group id, or across the whole fleet
// when no group is given.
func BuildGroupCountQuery(p GroupParams) (string, error) {
	var cols *groupColumns
	if p.Group != nil {
		c, err := columnsFor(*p.Group)
		if err != nil {
			return "", err
		}
		cols = &c
	}

	id := "NULL"
	if cols != nil {
		id = cols.ID
	}

	var sb strings.Builder
	sb.WriteString(filterIDsCTE + "\n")
	sb.WriteString("SELECT\n\t" + id + " AS group_id,\n\tCOUNT(DISTINCT a.aircraft_id) AS number_of_aircraft\n")
	sb.WriteString("FROM aircraft a\n")
	if !p.IsGlobalFleet {
		sb.WriteString(portfolioJoin + "\n")
	}

	conditions := scopeConditions(p.IsGlobalFleet)
	if cols != nil {
		conditions = append(conditions, FilterPredicate(cols.ID))
	}
	if where := whereClause(conditions); where != "" {
		sb.WriteString(where + "\n")
	}
	if cols != nil {
		sb.WriteString("GROUP BY " + cols.ID + "\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func scopeConditions(isGlobalFleet bool) []string {
	if isGlobalFleet {
		return nil
	}
	return []string{portfolioFilter}
}
