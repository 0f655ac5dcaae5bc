package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-analytics-service/internal/model"
)

func (h *Handler) listPortfolios(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	portfolios, err := h.services.Portfolios.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(portfolios))
}

func (h *Handler) getPortfolio(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	portfolio, err := h.services.Portfolios.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(portfolio))
}

func (h *Handler) createPortfolio(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input model.PortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	portfolio, err := h.services.Portfolios.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(portfolio))
}

func (h *Handler) updatePortfolio(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	var input model.PortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	portfolio, err := h.services.Portfolios.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(portfolio))
}

func (h *Handler) deletePortfolio(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.services.Portfolios.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listPortfolioAircraft(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := pathInt(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	filter, err := parseAircraftFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	aircraft, err := h.services.Portfolios.Aircraft(c.Request.Context(), principal, id, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(aircraft))
}
