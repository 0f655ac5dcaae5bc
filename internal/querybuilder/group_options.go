package querybuilder

import (
	"strings"

	"fleet-analytics-service/internal/model"
)

type GroupOptionsParams struct {
	PortfolioID *int
}

// BuildGroupOptionsQuery lists the selectable ids per grouping dimension.
// Serial numbers are only offered for a concrete portfolio.
func BuildGroupOptionsQuery(p GroupOptionsParams) string {
	groups := []model.MonthlyUtilizationGroup{
		model.GroupMarketClass,
		model.GroupAircraftFamily,
		model.GroupAircraftType,
		model.GroupAircraftSeries,
	}
	if p.PortfolioID != nil {
		groups = append(groups, model.GroupAircraftSerialNumber)
	}

	blocks := make([]string, 0, len(groups))
	for _, group := range groups {
		cols, _ := columnsFor(group)
		blocks = append(blocks, groupOptionBlock(group, cols, p.PortfolioID != nil))
	}

	return strings.Join(blocks, "\nUNION ALL\n") + "\nORDER BY group_type, name"
}

func groupOptionBlock(group model.MonthlyUtilizationGroup, cols groupColumns, scoped bool) string {
	var sb strings.Builder
	sb.WriteString("SELECT DISTINCT\n\t'" + group.String() + "' AS group_type,\n\t")
	sb.WriteString(cols.ID + " AS id,\n\t" + cols.Name + " AS name\n")
	sb.WriteString("FROM aircraft a\n")
	if scoped {
		sb.WriteString(portfolioJoin + "\n")
	}
	conditions := []string{cols.ID + " IS NOT NULL"}
	conditions = append(conditions, scopeConditions(!scoped)...)
	sb.WriteString(whereClause(conditions))
	return sb.String()
}
