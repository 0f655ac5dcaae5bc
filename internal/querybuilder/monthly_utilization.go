package querybuilder

import (
	"strings"

	"fleet-analytics-service/internal/model"
)

type MonthlyUtilizationParams struct {
	Group            *model.MonthlyUtilizationGroup
	IncludeBaseline  bool
	IncludeEmissions bool
	IsEmissions      bool
	IsHoursAndCycle  bool
	IsGlobalFleet    bool
}

const hoursAndCyclesColumns = `SUM(mu.hours) AS total_hours,
	SUM(mu.cycles) AS total_cycles,
	AVG(mu.hours) AS average_hours,
	AVG(mu.cycles) AS average_cycles,
	DIV0(SUM(mu.hours), SUM(mu.cycles)) AS average_hours_per_cycle`

const emptyHoursAndCyclesColumns = `NULL::FLOAT AS total_hours,
	NULL::FLOAT AS total_cycles,
	NULL::FLOAT AS average_hours,
	NULL::FLOAT AS average_cycles,
	NULL::FLOAT AS average_hours_per_cycle`

const emissionsColumns = `SUM(mu.co2_emissions_kg) AS total_co2_emissions_kg,
	AVG(mu.co2_emissions_kg) AS average_co2_emissions_kg,
	DIV0(SUM(mu.co2_emissions_kg), SUM(mu.hours)) AS average_co2_kg_per_hour,
	AVG(mu.co2_g_per_asm) AS average_co2_g_per_asm,
	AVG(mu.co2_g_per_ask) AS average_co2_g_per_ask`

const emptyEmissionsColumns = `NULL::FLOAT AS total_co2_emissions_kg,
	NULL::FLOAT AS average_co2_emissions_kg,
	NULL::FLOAT AS average_co2_kg_per_hour,
	NULL::FLOAT AS average_co2_g_per_asm,
	NULL::FLOAT AS average_co2_g_per_ask`

// BuildMonthlyUtilizationQuery returns the baseline and/or grouped monthly
// aggregates as one UNION ALL statement.
func BuildMonthlyUtilizationQuery(p MonthlyUtilizationParams) (string, error) {
	if p.Group == nil && !p.IncludeBaseline {
		return "", ErrNothingToSelect
	}

	var grouped string
	if p.Group != nil {
		cols, err := columnsFor(*p.Group)
		if err != nil {
			return "", err
		}
		grouped = monthlyUtilizationBranch(p, &cols)
	}

	branches := make([]string, 0, 2)
	if p.IncludeBaseline {
		branches = append(branches, monthlyUtilizationBranch(p, nil))
	}
	if grouped != "" {
		branches = append(branches, grouped)
	}

	var sb strings.Builder
	sb.WriteString(filterIDsCTE)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(branches, "\nUNION ALL\n"))
	sb.WriteString("\nORDER BY CASE WHEN group_id IS NULL THEN 0 ELSE 1 END, group_name, year, month")
	return sb.String(), nil
}

func includesHoursAndCycles(p MonthlyUtilizationParams) bool {
	return p.IsHoursAndCycle || !p.IsEmissions
}

func includesEmissions(p MonthlyUtilizationParams) bool {
	return p.IsEmissions || (p.IsHoursAndCycle && p.IncludeEmissions)
}

func monthlyUtilizationBranch(p MonthlyUtilizationParams, cols *groupColumns) string {
	label := "'" + BaselineGroupName + "'"
	id := "NULL"
	if cols != nil {
		label = cols.Name
		id = cols.ID
	}

	hours := emptyHoursAndCyclesColumns
	if includesHoursAndCycles(p) {
		hours = hoursAndCyclesColumns
	}
	emissions := emptyEmissionsColumns
	if includesEmissions(p) {
		emissions = emissionsColumns
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n\t")
	sb.WriteString(label + " AS group_name,\n\t")
	sb.WriteString(id + " AS group_id,\n\t")
	sb.WriteString("mu.year AS year,\n\tmu.month AS month,\n\t")
	sb.WriteString(hours + ",\n\t")
	sb.WriteString(emissions + ",\n\t")
	sb.WriteString("COUNT(DISTINCT mu.aircraft_id) AS number_of_aircraft\n")
	sb.WriteString("FROM aircraft_monthly_utilization mu\n")
	sb.WriteString("JOIN aircraft a ON a.aircraft_id = mu.aircraft_id\n")
	if !p.IsGlobalFleet {
		sb.WriteString(portfolioJoin + "\n")
	}

	conditions := []string{"mu.month_start BETWEEN @startDate AND @endDate"}
	if !p.IsGlobalFleet {
		conditions = append(conditions, portfolioFilter)
	}
	conditions = append(conditions, operatorFilter, lessorFilter)
	if cols != nil {
		conditions = append(conditions, FilterPredicate(cols.ID))
	}
	sb.WriteString(whereClause(conditions) + "\n")

	sb.WriteString("GROUP BY ")
	if cols != nil {
		sb.WriteString(cols.Name + ", " + cols.ID + ", ")
	}
	sb.WriteString("mu.year, mu.month")
	return sb.String()
}
