package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-analytics-service/internal/model"
	"fleet-analytics-service/internal/service"
)

const (
	dateLayout      = "2006-01-02"
	defaultPageSize = 50
	maxPageSize     = 500
)

// queryParams reads query string values and keeps the first parse error.
type queryParams struct {
	c   *gin.Context
	err error
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (p *queryParams) fail(name, raw string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: invalid %s %q", service.ErrInvalidArgument, name, raw)
	}
}

func (p *queryParams) optionalInt(name string) *int {
	raw := strings.TrimSpace(p.c.Query(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name, raw)
		return nil
	}
	return &value
}

func (p *queryParams) intOr(name string, fallback int) int {
	if value := p.optionalInt(name); value != nil {
		return *value
	}
	return fallback
}

func (p *queryParams) optionalFloat(name string) *float64 {
	raw := strings.TrimSpace(p.c.Query(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(name, raw)
		return nil
	}
	return &value
}

func (p *queryParams) boolean(name string) bool {
	raw := strings.TrimSpace(p.c.Query(name))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name, raw)
		return false
	}
	return value
}

// strings accepts both repeated keys and comma separated values.
func (p *queryParams) strings(name string) []string {
	var values []string
	for _, raw := range p.c.QueryArray(name) {
		for _, item := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

func (p *queryParams) ints(name string) []int {
	items := p.strings(name)
	if len(items) == 0 {
		return nil
	}
	values := make([]int, 0, len(items))
	for _, item := range items {
		value, err := strconv.Atoi(item)
		if err != nil {
			p.fail(name, item)
			return nil
		}
		values = append(values, value)
	}
	return values
}

func (p *queryParams) date(name string) *time.Time {
	raw := strings.TrimSpace(p.c.Query(name))
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.fail(name, raw)
		return nil
	}
	t = t.UTC()
	return &t
}

func (p *queryParams) group(name string) *model.MonthlyUtilizationGroup {
	raw := strings.TrimSpace(p.c.Query(name))
	if raw == "" {
		return nil
	}
	group, err := model.ParseMonthlyUtilizationGroup(raw)
	if err != nil {
		p.fail(name, raw)
		return nil
	}
	return &group
}

func (p *queryParams) period(name string) model.AssetWatchPeriod {
	raw := p.c.Query(name)
	period, err := model.ParseAssetWatchPeriod(raw)
	if err != nil {
		p.fail(name, raw)
	}
	return period
}

func parseMonthlyUtilizationRequest(c *gin.Context) (model.MonthlyUtilizationRequest, error) {
	q := newQueryParams(c)
	req := model.MonthlyUtilizationRequest{
		PortfolioID:      q.optionalInt("portfolio_id"),
		Group:            q.group("group"),
		GroupIDs:         q.ints("group_ids"),
		OperatorID:       q.optionalInt("operator_id"),
		LessorID:         q.optionalInt("lessor_id"),
		IncludeBaseline:  q.boolean("include_baseline"),
		IncludeEmissions: q.boolean("include_emissions"),
		IsEmissions:      q.boolean("is_emissions"),
		IsHoursAndCycle:  q.boolean("is_hours_and_cycle"),
	}
	from, to := q.date("from"), q.date("to")
	if q.err != nil {
		return req, q.err
	}
	if from == nil || to == nil {
		return req, fmt.Errorf("%w: from and to are required", service.ErrInvalidArgument)
	}
	req.Range = model.DateRange{From: *from, To: *to}
	return req, nil
}

func parseOrganizationsRequest(c *gin.Context) (model.OrganizationsRequest, error) {
	q := newQueryParams(c)
	req := model.OrganizationsRequest{
		PortfolioID: q.optionalInt("portfolio_id"),
		Group:       q.group("group"),
		GroupIDs:    q.ints("group_ids"),
	}
	return req, q.err
}

func parseSearchParameters(c *gin.Context) (model.AssetWatchSearchParameters, error) {
	q := newQueryParams(c)
	params := model.AssetWatchSearchParameters{
		Period:                  q.period("period"),
		DateFrom:                q.date("date_from"),
		DateTo:                  q.date("date_to"),
		RegionCodes:             q.strings("region_codes"),
		CountryCodes:            q.strings("country_codes"),
		Cities:                  q.strings("cities"),
		AirportCodes:            q.strings("airport_codes"),
		OperatorIDs:             q.ints("operator_ids"),
		LessorIDs:               q.ints("lessor_ids"),
		AircraftSeriesIDs:       q.ints("aircraft_series_ids"),
		EngineSeriesIDs:         q.ints("engine_series_ids"),
		AircraftIDs:             q.ints("aircraft_ids"),
		MinNoOfFlights:          q.optionalInt("min_no_of_flights"),
		MinTotalGroundStay:      q.optionalFloat("min_total_ground_stay"),
		MinIndividualGroundStay: q.optionalFloat("min_individual_ground_stay"),
		MaxIndividualGroundStay: q.optionalFloat("max_individual_ground_stay"),
		MinCurrentGroundStay:    q.optionalFloat("min_current_ground_stay"),
		MaxCurrentGroundStay:    q.optionalFloat("max_current_ground_stay"),
		ShowAircraftOnGround:    q.boolean("show_aircraft_on_ground"),
	}
	return params, q.err
}

func parsePagination(c *gin.Context) (model.Pagination, error) {
	q := newQueryParams(c)
	page := model.Pagination{
		Skip: q.intOr("skip", 0),
		Take: q.intOr("take", defaultPageSize),
	}
	if q.err != nil {
		return page, q.err
	}
	if page.Skip < 0 || page.Take <= 0 || page.Take > maxPageSize {
		return page, fmt.Errorf("%w: skip must be >= 0 and take between 1 and %d", service.ErrInvalidArgument, maxPageSize)
	}
	return page, nil
}

func parseAircraftFilter(c *gin.Context) (model.AircraftFilter, error) {
	q := newQueryParams(c)
	filter := model.AircraftFilter{
		OperatorIDs:       q.ints("operator_ids"),
		LessorIDs:         q.ints("lessor_ids"),
		AircraftSeriesIDs: q.ints("aircraft_series_ids"),
		EngineSeriesIDs:   q.ints("engine_series_ids"),
		AircraftIDs:       q.ints("aircraft_ids"),
	}
	return filter, q.err
}

func pathInt(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", service.ErrInvalidArgument, name, raw)
	}
	return value, nil
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", service.ErrInvalidArgument, name, raw)
	}
	return id, nil
}
