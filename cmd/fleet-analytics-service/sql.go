package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fleet-analytics-service/internal/model"
	"fleet-analytics-service/internal/querybuilder"
)

var sqlFlags struct {
	group            string
	portfolioID      int
	includeBaseline  bool
	includeEmissions bool
	isEmissions      bool
	isHoursAndCycle  bool
	compact          bool
}

var sqlCmd = &cobra.Command{
	Use:       "sql [monthly|group-count|group-options|operators|lessors]",
	Short:     "Print the warehouse query a report would run",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"monthly", "group-count", "group-options", "operators", "lessors"},
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := buildQuery(args[0])
		if err != nil {
			return err
		}
		if sqlFlags.compact {
			query = querybuilder.Normalize(query)
		}
		fmt.Fprintln(cmd.OutOrStdout(), query)
		return nil
	},
}

func init() {
	flags := sqlCmd.Flags()
	flags.StringVar(&sqlFlags.group, "group", "", "grouping dimension (MarketClass, AircraftFamily, AircraftType, AircraftSeries, AircraftSerialNumber)")
	flags.IntVar(&sqlFlags.portfolioID, "portfolio-id", 0, "portfolio id; omit for the global fleet")
	flags.BoolVar(&sqlFlags.includeBaseline, "include-baseline", false, "add the all aircraft baseline branch")
	flags.BoolVar(&sqlFlags.includeEmissions, "include-emissions", false, "add emissions to an hours and cycles report")
	flags.BoolVar(&sqlFlags.isEmissions, "emissions", false, "emissions report")
	flags.BoolVar(&sqlFlags.isHoursAndCycle, "hours-and-cycle", false, "hours and cycles report")
	flags.BoolVar(&sqlFlags.compact, "compact", false, "collapse whitespace")
}

func buildQuery(kind string) (string, error) {
	var group *model.MonthlyUtilizationGroup
	if sqlFlags.group != "" {
		g, err := model.ParseMonthlyUtilizationGroup(sqlFlags.group)
		if err != nil {
			return "", err
		}
		group = &g
	}
	var portfolioID *int
	if sqlFlags.portfolioID > 0 {
		portfolioID = &sqlFlags.portfolioID
	}
	groupParams := querybuilder.GroupParams{Group: group, IsGlobalFleet: portfolioID == nil}

	switch kind {
	case "monthly":
		return querybuilder.BuildMonthlyUtilizationQuery(querybuilder.MonthlyUtilizationParams{
			Group:            group,
			IncludeBaseline:  sqlFlags.includeBaseline,
			IncludeEmissions: sqlFlags.includeEmissions,
			IsEmissions:      sqlFlags.isEmissions,
			IsHoursAndCycle:  sqlFlags.isHoursAndCycle,
			IsGlobalFleet:    portfolioID == nil,
		})
	case "group-count":
		return querybuilder.BuildGroupCountQuery(groupParams)
	case "group-options":
		return querybuilder.BuildGroupOptionsQuery(querybuilder.GroupOptionsParams{PortfolioID: portfolioID}), nil
	case "operators":
		return querybuilder.BuildOperatorsQuery(groupParams)
	case "lessors":
		return querybuilder.BuildLessorsQuery(groupParams)
	default:
		return "", fmt.Errorf("unknown query %q", kind)
	}
}
