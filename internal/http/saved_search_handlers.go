package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-analytics-service/internal/model"
)

func (h *Handler) listSavedSearches(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	q := newQueryParams(c)
	portfolioID := q.optionalInt("portfolio_id")
	if q.err != nil {
		h.handleError(c, q.err)
		return
	}

	searches, err := h.services.SavedSearches.List(c.Request.Context(), principal, portfolioID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(searches))
}

func (h *Handler) getSavedSearch(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	search, err := h.services.SavedSearches.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(search))
}

func (h *Handler) createSavedSearch(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input model.SavedSearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	search, err := h.services.SavedSearches.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(search))
}

func (h *Handler) updateSavedSearch(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	var input model.SavedSearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	search, err := h.services.SavedSearches.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(search))
}

func (h *Handler) deleteSavedSearch(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.services.SavedSearches.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listRunReports(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	q := newQueryParams(c)
	limit := q.intOr("limit", 0)
	if q.err != nil {
		h.handleError(c, q.err)
		return
	}

	reports, err := h.services.SavedSearches.RunReports(c.Request.Context(), principal, id, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(reports))
}

func (h *Handler) runSavedSearch(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	report, err := h.services.SavedSearches.Run(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(report))
}
