package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-analytics-service/internal/http/middleware"
	"fleet-analytics-service/internal/model"
	"fleet-analytics-service/internal/querybuilder"
	"fleet-analytics-service/internal/service"
)

type UtilizationService interface {
	GetMonthlyUtilization(ctx context.Context, principal model.Principal, req model.MonthlyUtilizationRequest) ([]model.MonthlyUtilization, error)
	GetGroupOptions(ctx context.Context, principal model.Principal, portfolioID *int) (model.GroupOptions, error)
	GetOperators(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error)
	GetLessors(ctx context.Context, principal model.Principal, req model.OrganizationsRequest) ([]model.IDName, error)
}

type AssetWatchService interface {
	GetTableData(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters, page model.Pagination) (model.AssetWatchTablePage, error)
}

type GroundEventsService interface {
	GetSummary(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) (model.AssetWatchSummary, error)
	GetFilterValues(ctx context.Context, principal model.Principal, portfolioID int, params model.AssetWatchSearchParameters) ([]model.GeographicFilterValue, error)
}

type FlightsService interface {
	GetFlights(ctx context.Context, principal model.Principal, portfolioID, aircraftID int, params model.AssetWatchSearchParameters) ([]model.Flight, error)
}

type PortfoliosService interface {
	List(ctx context.Context, principal model.Principal) ([]model.Portfolio, error)
	Get(ctx context.Context, principal model.Principal, portfolioID int) (*model.Portfolio, error)
	Create(ctx context.Context, principal model.Principal, input model.PortfolioInput) (*model.Portfolio, error)
	Update(ctx context.Context, principal model.Principal, portfolioID int, input model.PortfolioInput) (*model.Portfolio, error)
	Delete(ctx context.Context, principal model.Principal, portfolioID int) error
	Aircraft(ctx context.Context, principal model.Principal, portfolioID int, filter model.AircraftFilter) ([]model.Aircraft, error)
}

type SavedSearchService interface {
	List(ctx context.Context, principal model.Principal, portfolioID *int) ([]model.SavedSearch, error)
	Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearch, error)
	Create(ctx context.Context, principal model.Principal, input model.SavedSearchInput) (*model.SavedSearch, error)
	Update(ctx context.Context, principal model.Principal, id uuid.UUID, input model.SavedSearchInput) (*model.SavedSearch, error)
	Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error
	RunReports(ctx context.Context, principal model.Principal, id uuid.UUID, limit int) ([]model.SavedSearchRunReport, error)
	Run(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.SavedSearchRunReport, error)
}

type SchemaChecker interface {
	MissingRelations(ctx context.Context, names ...string) ([]string, error)
}

type Services struct {
	Utilization   UtilizationService
	AssetWatch    AssetWatchService
	GroundEvents  GroundEventsService
	Flights       FlightsService
	Portfolios    PortfoliosService
	SavedSearches SavedSearchService
	Schema        SchemaChecker
}

type Handler struct {
	services  Services
	relations []string
	log       zerolog.Logger
}

func NewHandler(services Services, requiredRelations []string, log zerolog.Logger) *Handler {
	return &Handler{services: services, relations: requiredRelations, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/health", h.health)
	r.GET("/health/ready", h.ready)

	protected := r.Group("/api")
	protected.Use(authMiddleware)

	utilization := protected.Group("/utilization")
	utilization.GET("/monthly", h.getMonthlyUtilization)
	utilization.GET("/group-options", h.getGroupOptions)
	utilization.GET("/operators", h.getOperators)
	utilization.GET("/lessors", h.getLessors)

	portfolios := protected.Group("/portfolios")
	portfolios.GET("", h.listPortfolios)
	portfolios.POST("", h.createPortfolio)
	portfolios.GET("/:id", h.getPortfolio)
	portfolios.PUT("/:id", h.updatePortfolio)
	portfolios.DELETE("/:id", h.deletePortfolio)
	portfolios.GET("/:id/aircraft", h.listPortfolioAircraft)
	portfolios.GET("/:id/aircraft/:aircraftId/flights", h.getFlights)
	portfolios.GET("/:id/asset-watch/table", h.getAssetWatchTable)
	portfolios.GET("/:id/asset-watch/summary", h.getAssetWatchSummary)
	portfolios.GET("/:id/asset-watch/filters", h.getAssetWatchFilters)

	searches := protected.Group("/saved-searches")
	searches.GET("", h.listSavedSearches)
	searches.POST("", h.createSavedSearch)
	searches.GET("/:id", h.getSavedSearch)
	searches.PUT("/:id", h.updateSavedSearch)
	searches.DELETE("/:id", h.deleteSavedSearch)
	searches.GET("/:id/run-reports", h.listRunReports)
	searches.POST("/:id/run", h.runSavedSearch)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ready(c *gin.Context) {
	if h.services.Schema == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	missing, err := h.services.Schema.MissingRelations(c.Request.Context(), h.relations...)
	if err != nil {
		h.log.Warn().Err(err).Msg("readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	if len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "missing": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requirePrincipal responds with 401 when the auth middleware did not run.
func requirePrincipal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
	}
	return p, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, querybuilder.ErrUnknownGroup),
		errors.Is(err, querybuilder.ErrNothingToSelect),
		errors.Is(err, model.ErrInvalidDateRange),
		errors.Is(err, model.ErrUnknownPeriod):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
