package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
)

// PortfolioHandler handles portfolio valuation requests. The wall clock is
// read here, once per request; everything below takes the instant explicitly.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// parseAsOf reads the optional as_of query parameter (RFC3339), defaulting
// to the current instant.
func parseAsOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), nil
	}
	asOf, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "as_of must be RFC3339")
	}
	return asOf, nil
}

// parseYear reads the optional year query parameter, defaulting to the
// valuation instant's year.
func parseYear(c *gin.Context, asOf time.Time) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return asOf.Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 3000 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}
	return year, nil
}

// GetSummary returns the aggregated portfolio value
// @Summary     Portfolio summary
// @Description Total invested, current value, and returns across all holdings
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "Valuation instant (RFC3339), defaults to now"
// @Success     200 {object} services.PortfolioOverview "Portfolio summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.portfolioService.Summary(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetAllocation returns the portfolio value grouped by kind
// @Summary     Portfolio allocation
// @Description Current value grouped by investment kind, sorted by value
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "Valuation instant (RFC3339), defaults to now"
// @Success     200 {object} map[string]interface{} "Allocation by kind"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/allocation [get]
func (h *PortfolioHandler) GetAllocation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.portfolioService.Allocation(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"as_of": asOf, "allocation": allocation})
}

// GetHighlights returns the best and worst performers
// @Summary     Portfolio highlights
// @Description Top and bottom holdings by returns percentage
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "Valuation instant (RFC3339), defaults to now"
// @Success     200 {object} valuation.Highlights "Performance highlights"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/highlights [get]
func (h *PortfolioHandler) GetHighlights(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	highlights, err := h.portfolioService.Highlights(userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, highlights)
}

// GetYearlyInterest returns the interest earned in a calendar year
// @Summary     Yearly interest
// @Description Interest earned by interest-bearing holdings in a calendar year, total and by kind
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year, defaults to the valuation year"
// @Param       as_of query string false "Valuation instant (RFC3339), defaults to now"
// @Success     200 {object} map[string]interface{} "Windowed interest"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/interest/yearly [get]
func (h *PortfolioHandler) GetYearlyInterest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	interest, err := h.portfolioService.YearlyInterest(userID, year, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "interest": interest})
}

// GetMonthlyInterest returns per-month interest for a calendar year
// @Summary     Monthly interest
// @Description Per-month interest for a calendar year; months after the valuation instant are tagged future
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year, defaults to the valuation year"
// @Param       as_of query string false "Valuation instant (RFC3339), defaults to now"
// @Success     200 {object} map[string]interface{} "Monthly interest"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/interest/monthly [get]
func (h *PortfolioHandler) GetMonthlyInterest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, err := h.portfolioService.MonthlyInterest(userID, year, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "months": months})
}
