package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getMonthlyUtilization(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	req, err := parseMonthlyUtilizationRequest(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	rows, err := h.services.Utilization.GetMonthlyUtilization(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(rows))
}

func (h *Handler) getGroupOptions(c *gin.Context) {
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

	options, err := h.services.Utilization.GetGroupOptions(c.Request.Context(), principal, portfolioID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(options))
}

func (h *Handler) getOperators(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	req, err := parseOrganizationsRequest(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	operators, err := h.services.Utilization.GetOperators(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(operators))
}

func (h *Handler) getLessors(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	req, err := parseOrganizationsRequest(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	lessors, err := h.services.Utilization.GetLessors(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(lessors))
}
