package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getAssetWatchTable(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	portfolioID, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	params, err := parseSearchParameters(c)
	if err != nil {
		h.handleError(c, err)
		return
	}
	page, err := parsePagination(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.services.AssetWatch.GetTableData(c.Request.Context(), principal, portfolioID, params, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) getAssetWatchSummary(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	portfolioID, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	params, err := parseSearchParameters(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	summary, err := h.services.GroundEvents.GetSummary(c.Request.Context(), principal, portfolioID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) getAssetWatchFilters(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	portfolioID, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	params, err := parseSearchParameters(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	values, err := h.services.GroundEvents.GetFilterValues(c.Request.Context(), principal, portfolioID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(values))
}

func (h *Handler) getFlights(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	portfolioID, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	aircraftID, err := pathInt(c, "aircraftId")
	if err != nil {
		h.handleError(c, err)
		return
	}
	params, err := parseSearchParameters(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	flights, err := h.services.Flights.GetFlights(c.Request.Context(), principal, portfolioID, aircraftID, params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(flights))
}
