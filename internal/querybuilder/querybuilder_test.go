package querybuilder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-analytics-service/internal/model"
)

const normalizedCTE = "WITH filter_ids AS ( SELECT TRY_TO_NUMBER(TRIM(f.value)) AS id FROM TABLE(SPLIT_TO_TABLE(@filterIds, ',')) f )"

func groupPtr(g model.MonthlyUtilizationGroup) *model.MonthlyUtilizationGroup {
	return &g
}

func TestBuildMonthlyUtilizationQuery_BaselineOnlyGlobalFleet(t *testing.T) {
	sql, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{
		IncludeBaseline: true,
		IsHoursAndCycle: true,
		IsGlobalFleet:   true,
	})
	require.NoError(t, err)

	expected := normalizedCTE +
		" SELECT 'All aircraft' AS group_name, NULL AS group_id, mu.year AS year, mu.month AS month," +
		" SUM(mu.hours) AS total_hours, SUM(mu.cycles) AS total_cycles, AVG(mu.hours) AS average_hours," +
		" AVG(mu.cycles) AS average_cycles, DIV0(SUM(mu.hours), SUM(mu.cycles)) AS average_hours_per_cycle," +
		" NULL::FLOAT AS total_co2_emissions_kg, NULL::FLOAT AS average_co2_emissions_kg," +
		" NULL::FLOAT AS average_co2_kg_per_hour, NULL::FLOAT AS average_co2_g_per_asm," +
		" NULL::FLOAT AS average_co2_g_per_ask, COUNT(DISTINCT mu.aircraft_id) AS number_of_aircraft" +
		" FROM aircraft_monthly_utilization mu JOIN aircraft a ON a.aircraft_id = mu.aircraft_id" +
		" WHERE mu.month_start BETWEEN @startDate AND @endDate" +
		" AND (@operatorId IS NULL OR a.operator_organization_id = @operatorId)" +
		" AND (@lessorId IS NULL OR a.manager_organization_id = @lessorId)" +
		" GROUP BY mu.year, mu.month" +
		" ORDER BY CASE WHEN group_id IS NULL THEN 0 ELSE 1 END, group_name, year, month"

	assert.Equal(t, expected, Normalize(sql))
}

func TestBuildMonthlyUtilizationQuery_GroupWithoutBaseline(t *testing.T) {
	idColumns := map[model.MonthlyUtilizationGroup]string{
		model.GroupMarketClass:          "a.market_class_id",
		model.GroupAircraftFamily:       "a.aircraft_family_id",
		model.GroupAircraftType:         "a.aircraft_type_id",
		model.GroupAircraftSeries:       "a.aircraft_series_id",
		model.GroupAircraftSerialNumber: "a.aircraft_id",
	}

	for _, group := range model.MonthlyUtilizationGroups {
		t.Run(group.String(), func(t *testing.T) {
			sql, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{
				Group:           groupPtr(group),
				IsHoursAndCycle: true,
			})
			require.NoError(t, err)

			normalized := Normalize(sql)
			assert.True(t, strings.HasPrefix(normalized, normalizedCTE))
			assert.NotContains(t, normalized, BaselineGroupName)
			assert.NotContains(t, normalized, "UNION ALL")
			assert.Equal(t, 1, strings.Count(normalized, "IN (SELECT id FROM filter_ids)"))
			assert.Equal(t, 1, strings.Count(normalized, FilterPredicate(idColumns[group])))
		})
	}
}

func TestBuildMonthlyUtilizationQuery_BaselineAndGroupAreUnioned(t *testing.T) {
	sql, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{
		Group:           groupPtr(model.GroupAircraftSeries),
		IncludeBaseline: true,
		IsHoursAndCycle: true,
	})
	require.NoError(t, err)

	normalized := Normalize(sql)
	assert.Equal(t, 1, strings.Count(normalized, "UNION ALL"))
	assert.Less(t, strings.Index(normalized, "'All aircraft' AS group_name"), strings.Index(normalized, "a.aircraft_series AS group_name"))
	assert.Equal(t, 2, strings.Count(normalized, "pa.portfolio_id = @portfolioId"))
	assert.Equal(t, 2, strings.Count(normalized, "pa.aircraft_id IS NOT NULL"))
}

func TestBuildMonthlyUtilizationQuery_NothingToSelect(t *testing.T) {
	_, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{IncludeBaseline: false})
	assert.ErrorIs(t, err, ErrNothingToSelect)
}

func TestBuildMonthlyUtilizationQuery_UnknownGroup(t *testing.T) {
	_, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{
		Group:           groupPtr(model.MonthlyUtilizationGroup(999)),
		IncludeBaseline: true,
	})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestBuildMonthlyUtilizationQuery_MetricBlocks(t *testing.T) {
	tests := []struct {
		name          string
		params        MonthlyUtilizationParams
		wantHours     bool
		wantEmissions bool
	}{
		{
			name:      "hours and cycles",
			params:    MonthlyUtilizationParams{IsHoursAndCycle: true},
			wantHours: true,
		},
		{
			name:          "emissions only",
			params:        MonthlyUtilizationParams{IsEmissions: true},
			wantEmissions: true,
		},
		{
			name:          "hours and cycles with emissions",
			params:        MonthlyUtilizationParams{IsHoursAndCycle: true, IncludeEmissions: true},
			wantHours:     true,
			wantEmissions: true,
		},
		{
			name:      "include emissions alone does not switch",
			params:    MonthlyUtilizationParams{IncludeEmissions: true},
			wantHours: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.IncludeBaseline = true
			sql, err := BuildMonthlyUtilizationQuery(tt.params)
			require.NoError(t, err)

			normalized := Normalize(sql)
			assert.Equal(t, tt.wantHours, strings.Contains(normalized, "SUM(mu.hours) AS total_hours"))
			assert.Equal(t, !tt.wantHours, strings.Contains(normalized, "NULL::FLOAT AS total_hours"))
			assert.Equal(t, tt.wantEmissions, strings.Contains(normalized, "SUM(mu.co2_emissions_kg) AS total_co2_emissions_kg"))
			assert.Equal(t, !tt.wantEmissions, strings.Contains(normalized, "NULL::FLOAT AS total_co2_emissions_kg"))
		})
	}
}

func TestBuildMonthlyUtilizationQuery_GlobalFleetOmitsPortfolioJoin(t *testing.T) {
	sql, err := BuildMonthlyUtilizationQuery(MonthlyUtilizationParams{
		Group:           groupPtr(model.GroupMarketClass),
		IncludeBaseline: true,
		IsGlobalFleet:   true,
	})
	require.NoError(t, err)

	assert.NotContains(t, sql, "portfolio_aircraft")
	assert.NotContains(t, sql, "@portfolioId")
	assert.NotContains(t, sql, "pa.aircraft_id IS NOT NULL")
}

func TestBuildGroupCountQuery(t *testing.T) {
	sql, err := BuildGroupCountQuery(GroupParams{IsGlobalFleet: true})
	require.NoError(t, err)
	assert.Equal(t, normalizedCTE+" SELECT NULL AS group_id, COUNT(DISTINCT a.aircraft_id) AS number_of_aircraft FROM aircraft a", Normalize(sql))

	sql, err = BuildGroupCountQuery(GroupParams{Group: groupPtr(model.GroupAircraftType)})
	require.NoError(t, err)
	assert.Equal(t, normalizedCTE+
		" SELECT a.aircraft_type_id AS group_id, COUNT(DISTINCT a.aircraft_id) AS number_of_aircraft"+
		" FROM aircraft a"+
		" LEFT JOIN portfolio_aircraft pa ON pa.aircraft_id = a.aircraft_id AND pa.portfolio_id = @portfolioId"+
		" WHERE pa.aircraft_id IS NOT NULL AND a.aircraft_type_id IN (SELECT id FROM filter_ids)"+
		" GROUP BY a.aircraft_type_id", Normalize(sql))

	_, err = BuildGroupCountQuery(GroupParams{Group: groupPtr(model.MonthlyUtilizationGroup(42))})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestBuildGroupOptionsQuery_SerialNumbersOnlyForPortfolio(t *testing.T) {
	global := BuildGroupOptionsQuery(GroupOptionsParams{})
	assert.NotContains(t, global, "'AircraftSerialNumber' AS group_type")
	assert.NotContains(t, global, "portfolio_aircraft")
	assert.Equal(t, 3, strings.Count(global, "UNION ALL"))

	portfolioID := 7
	scoped := BuildGroupOptionsQuery(GroupOptionsParams{PortfolioID: &portfolioID})
	assert.Contains(t, scoped, "'AircraftSerialNumber' AS group_type")
	assert.Contains(t, Normalize(scoped), "a.aircraft_id AS id, a.aircraft_serial_number AS name")
	assert.Equal(t, 5, strings.Count(scoped, "pa.portfolio_id = @portfolioId"))
}

func TestBuildOrganizationsQueries(t *testing.T) {
	operators, err := BuildOperatorsQuery(GroupParams{IsGlobalFleet: true})
	require.NoError(t, err)
	assert.Equal(t, normalizedCTE+
		" SELECT DISTINCT a.operator_organization_id AS id, a.operator_organization AS name"+
		" FROM aircraft a WHERE a.operator_organization_id IS NOT NULL ORDER BY name", Normalize(operators))

	lessors, err := BuildLessorsQuery(GroupParams{Group: groupPtr(model.GroupAircraftFamily)})
	require.NoError(t, err)
	normalized := Normalize(lessors)
	assert.Contains(t, normalized, "a.manager_organization_id AS id, a.manager_organization AS name")
	assert.Contains(t, normalized, "pa.aircraft_id IS NOT NULL")
	assert.Equal(t, 1, strings.Count(normalized, FilterPredicate("a.aircraft_family_id")))

	_, err = BuildLessorsQuery(GroupParams{Group: groupPtr(model.MonthlyUtilizationGroup(-1))})
	assert.ErrorIs(t, err, ErrUnknownGroup)
}
