package querybuilder

import (
	"strings"
)

type organizationColumns struct {
	ID   string
	Name string
}

var (
	operatorColumns = organizationColumns{ID: "a.operator_organization_id", Name: "a.operator_organization"}
	lessorColumns   = organizationColumns{ID: "a.manager_organization_id", Name: "a.manager_organization"}
)

// BuildOperatorsQuery lists distinct operators, narrowed to the requested
// group ids when a group is given.
func BuildOperatorsQuery(p GroupParams) (string, error) {
	return buildOrganizationsQuery(operatorColumns, p)
}

// BuildLessorsQuery lists distinct lessors (aircraft managers).
func BuildLessorsQuery(p GroupParams) (string, error) {
	return buildOrganizationsQuery(lessorColumns, p)
}

func buildOrganizationsQuery(org organizationColumns, p GroupParams) (string, error) {
	var groupFilter string
	if p.Group != nil {
		cols, err := columnsFor(*p.Group)
		if err != nil {
			return "", err
		}
		groupFilter = FilterPredicate(cols.ID)
	}

	var sb strings.Builder
	sb.WriteString(filterIDsCTE + "\n")
	sb.WriteString("SELECT DISTINCT\n\t" + org.ID + " AS id,\n\t" + org.Name + " AS name\n")
	sb.WriteString("FROM aircraft a\n")
	if !p.IsGlobalFleet {
		sb.WriteString(portfolioJoin + "\n")
	}

	conditions := []string{org.ID + " IS NOT NULL"}
	conditions = append(conditions, scopeConditions(p.IsGlobalFleet)...)
	if groupFilter != "" {
		conditions = append(conditions, groupFilter)
	}
	sb.WriteString(whereClause(conditions) + "\n")
	sb.WriteString("ORDER BY name")
	return sb.String(), nil
}
