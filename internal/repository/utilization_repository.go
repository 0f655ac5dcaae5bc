package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-analytics-service/internal/model"
	"fleet-analytics-service/internal/querybuilder"
)

type UtilizationRepository struct {
	warehouse
}

func NewUtilizationRepository(db *gorm.DB, timeout time.Duration) *UtilizationRepository {
	return &UtilizationRepository{warehouse: newWarehouse(db, timeout)}
}

type monthlyUtilizationRow struct {
	GroupName             string   `gorm:"column:GROUP_NAME"`
	GroupID               *int     `gorm:"column:GROUP_ID"`
	Year                  int      `gorm:"column:YEAR"`
	Month                 int      `gorm:"column:MONTH"`
	TotalHours            *float64 `gorm:"column:TOTAL_HOURS"`
	TotalCycles           *float64 `gorm:"column:TOTAL_CYCLES"`
	AverageHours          *float64 `gorm:"column:AVERAGE_HOURS"`
	AverageCycles         *float64 `gorm:"column:AVERAGE_CYCLES"`
	AverageHoursPerCycle  *float64 `gorm:"column:AVERAGE_HOURS_PER_CYCLE"`
	TotalCO2EmissionsKg   *float64 `gorm:"column:TOTAL_CO2_EMISSIONS_KG"`
	AverageCO2EmissionsKg *float64 `gorm:"column:AVERAGE_CO2_EMISSIONS_KG"`
	AverageCO2KgPerHour   *float64 `gorm:"column:AVERAGE_CO2_KG_PER_HOUR"`
	AverageCO2GPerASM     *float64 `gorm:"column:AVERAGE_CO2_G_PER_ASM"`
	AverageCO2GPerASK     *float64 `gorm:"column:AVERAGE_CO2_G_PER_ASK"`
	NumberOfAircraft      int      `gorm:"column:NUMBER_OF_AIRCRAFT"`
}

func (r *UtilizationRepository) MonthlyUtilization(ctx context.Context, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error) {
	sql, err := querybuilder.BuildMonthlyUtilizationQuery(querybuilder.MonthlyUtilizationParams{
		Group:            req.Group,
		IncludeBaseline:  req.IncludeBaseline,
		IncludeEmissions: req.IncludeEmissions,
		IsEmissions:      req.IsEmissions,
		IsHoursAndCycle:  req.IsHoursAndCycle,
		IsGlobalFleet:    req.IsGlobalFleet(),
	})
	if err != nil {
		return nil, err
	}

	months := model.MonthRange(req.Range)
	args := map[string]interface{}{
		"filterIds":   joinIDs(req.GroupIDs),
		"portfolioId": req.PortfolioID,
		"startDate":   months.From,
		"endDate":     months.To,
		"operatorId":  req.OperatorID,
		"lessorId":    req.LessorID,
	}

	var rows []monthlyUtilizationRow
	err = r.run(ctx, "monthly_utilization", func(tx *gorm.DB) error {
		return raw(tx, sql, args).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.MonthlyUtilization, 0, len(rows))
	for _, row := range rows {
		result = append(result, model.MonthlyUtilization{
			Group:                 row.GroupName,
			GroupID:               row.GroupID,
			Year:                  row.Year,
			Month:                 row.Month,
			TotalHours:            row.TotalHours,
			TotalCycles:           row.TotalCycles,
			AverageHours:          row.AverageHours,
			AverageCycles:         row.AverageCycles,
			AverageHoursPerCycle:  row.AverageHoursPerCycle,
			TotalCO2EmissionsKg:   row.TotalCO2EmissionsKg,
			AverageCO2EmissionsKg: row.AverageCO2EmissionsKg,
			AverageCO2KgPerHour:   row.AverageCO2KgPerHour,
			AverageCO2GPerASM:     row.AverageCO2GPerASM,
			AverageCO2GPerASK:     row.AverageCO2GPerASK,
			NumberOfAircraft:      row.NumberOfAircraft,
		})
	}
	return result, nil
}

func (r *UtilizationRepository) GroupCounts(ctx context.Context, portfolioID *int, group *model.MonthlyUtilizationGroup, groupIDs []int) ([]model.MonthlyUtilizationGroupCount, error) {
	sql, err := querybuilder.BuildGroupCountQuery(querybuilder.GroupParams{
		Group:         group,
		IsGlobalFleet: portfolioID == nil,
	})
	if err != nil {
		return nil, err
	}

	args := map[string]interface{}{
		"filterIds":   joinIDs(groupIDs),
		"portfolioId": portfolioID,
	}

	var rows []model.MonthlyUtilizationGroupCount
	err = r.run(ctx, "monthly_utilization_group_count", func(tx *gorm.DB) error {
		return raw(tx, sql, args).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UtilizationRepository) GroupOptions(ctx context.Context, portfolioID *int) (model.GroupOptions, error) {
	sql := querybuilder.BuildGroupOptionsQuery(querybuilder.GroupOptionsParams{PortfolioID: portfolioID})

	type row struct {
		GroupType string
		ID        int
		Name      string
	}
	var rows []row
	err := r.run(ctx, "monthly_utilization_group_options", func(tx *gorm.DB) error {
		return raw(tx, sql, map[string]interface{}{"portfolioId": portfolioID}).Scan(&rows).Error
	})
	if err != nil {
		return model.GroupOptions{}, err
	}

	options := model.GroupOptions{
		MarketClasses:    []model.IDName{},
		AircraftFamilies: []model.IDName{},
		AircraftTypes:    []model.IDName{},
		AircraftSeries:   []model.IDName{},
	}
	if portfolioID != nil {
		options.AircraftSerialNumbers = []model.IDName{}
	}
	for _, row := range rows {
		item := model.IDName{ID: row.ID, Name: row.Name}
		switch row.GroupType {
		case model.GroupMarketClass.String():
			options.MarketClasses = append(options.MarketClasses, item)
		case model.GroupAircraftFamily.String():
			options.AircraftFamilies = append(options.AircraftFamilies, item)
		case model.GroupAircraftType.String():
			options.AircraftTypes = append(options.AircraftTypes, item)
		case model.GroupAircraftSeries.String():
			options.AircraftSeries = append(options.AircraftSeries, item)
		case model.GroupAircraftSerialNumber.String():
			options.AircraftSerialNumbers = append(options.AircraftSerialNumbers, item)
		}
	}
	return options, nil
}

func (r *UtilizationRepository) Operators(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error) {
	sql, err := querybuilder.BuildOperatorsQuery(querybuilder.GroupParams{Group: req.Group, IsGlobalFleet: req.PortfolioID == nil})
	if err != nil {
		return nil, err
	}
	return r.organizations(ctx, "operators", sql, req)
}

func (r *UtilizationRepository) Lessors(ctx context.Context, req model.OrganizationsRequest) ([]model.IDName, error) {
	sql, err := querybuilder.BuildLessorsQuery(querybuilder.GroupParams{Group: req.Group, IsGlobalFleet: req.PortfolioID == nil})
	if err != nil {
		return nil, err
	}
	return r.organizations(ctx, "lessors", sql, req)
}

func (r *UtilizationRepository) organizations(ctx context.Context, name, sql string, req model.OrganizationsRequest) ([]model.IDName, error) {
	args := map[string]interface{}{
		"filterIds":   joinIDs(req.GroupIDs),
		"portfolioId": req.PortfolioID,
	}

	rows := []model.IDName{}
	err := r.run(ctx, name, func(tx *gorm.DB) error {
		return raw(tx, sql, args).Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
