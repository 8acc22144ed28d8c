package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
	"nivesh/internal/valuation"
)

// InvestmentHandler handles investment-related requests
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
	portfolioService  services.PortfolioServicer
	auditService      services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(investmentService services.InvestmentServicer, portfolioService services.PortfolioServicer, auditService services.AuditServicer) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
		portfolioService:  portfolioService,
		auditService:      auditService,
	}
}

// InvestmentFields carries the kind-specific attributes shared by create and
// update payloads. Dates are RFC3339.
type InvestmentFields struct {
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
	Currency *string `json:"currency" binding:"omitempty,iso4217"`

	Quantity      *float64 `json:"quantity" binding:"omitempty,gte=0"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,gte=0"`
	CurrentPrice  *float64 `json:"current_price" binding:"omitempty,gte=0"`

	Principal    *float64 `json:"principal" binding:"omitempty,gte=0"`
	InterestRate *float64 `json:"interest_rate" binding:"omitempty,gte=0"`
	Compounding  *string  `json:"compounding" binding:"omitempty,compounding"`

	MonthlyDeposit *float64 `json:"monthly_deposit" binding:"omitempty,gte=0"`
	TenureMonths   *int     `json:"tenure_months" binding:"omitempty,gte=0"`

	MonthlyContribution *float64   `json:"monthly_contribution" binding:"omitempty,gte=0"`
	CurrentBalance      *float64   `json:"current_balance" binding:"omitempty,gte=0"`
	LastUpdated         *time.Time `json:"last_updated"`

	MaturityAmount *float64 `json:"maturity_amount" binding:"omitempty,gte=0"`

	SumAssured     *float64 `json:"sum_assured" binding:"omitempty,gte=0"`
	BonusRate      *float64 `json:"bonus_rate" binding:"omitempty,gte=0"`
	FinalBonus     *float64 `json:"final_bonus" binding:"omitempty,gte=0"`
	CoverageAmount *float64 `json:"coverage_amount" binding:"omitempty,gte=0"`
	PremiumsPaid   *float64 `json:"premiums_paid" binding:"omitempty,gte=0"`

	FaceValue   *float64 `json:"face_value" binding:"omitempty,gte=0"`
	MarketValue *float64 `json:"market_value" binding:"omitempty,gte=0"`

	StartDate    *time.Time `json:"start_date"`
	MaturityDate *time.Time `json:"maturity_date"`
}

// CreateInvestmentRequest represents the create investment payload
type CreateInvestmentRequest struct {
	Kind string `json:"kind" binding:"required,investment_kind"`
	Name string `json:"name" binding:"required,max=255"`
	InvestmentFields
}

// UpdateInvestmentRequest represents the partial update payload. Kind is
// accepted only so the service can reject attempts to change it.
type UpdateInvestmentRequest struct {
	Kind *string `json:"kind" binding:"omitempty,investment_kind"`
	Name *string `json:"name" binding:"omitempty,max=255"`
	InvestmentFields
}

// UpdatePriceRequest represents a single-holding price update
type UpdatePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// PriceFeedRequest represents a batch of market prices from a data feed
type PriceFeedRequest struct {
	Updates []services.PriceUpdate `json:"updates" binding:"required,min=1,dive"`
}

func (f InvestmentFields) toInput() services.InvestmentInput {
	input := services.InvestmentInput{
		Notes:               f.Notes,
		Currency:            f.Currency,
		Quantity:            f.Quantity,
		PurchasePrice:       f.PurchasePrice,
		CurrentPrice:        f.CurrentPrice,
		Principal:           f.Principal,
		InterestRate:        f.InterestRate,
		MonthlyDeposit:      f.MonthlyDeposit,
		TenureMonths:        f.TenureMonths,
		MonthlyContribution: f.MonthlyContribution,
		CurrentBalance:      f.CurrentBalance,
		LastUpdated:         f.LastUpdated,
		MaturityAmount:      f.MaturityAmount,
		SumAssured:          f.SumAssured,
		BonusRate:           f.BonusRate,
		FinalBonus:          f.FinalBonus,
		CoverageAmount:      f.CoverageAmount,
		PremiumsPaid:        f.PremiumsPaid,
		FaceValue:           f.FaceValue,
		MarketValue:         f.MarketValue,
		StartDate:           f.StartDate,
		MaturityDate:        f.MaturityDate,
	}
	if f.Compounding != nil {
		compounding := models.Compounding(*f.Compounding)
		input.Compounding = &compounding
	}
	return input
}

// CreateInvestment adds a new holding
// @Summary     Create an investment
// @Description Add a new holding; required fields depend on the kind
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment data"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input or missing kind field"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := req.toInput()
	input.Kind = models.InvestmentKind(req.Kind)
	input.Name = req.Name

	investment, err := h.investmentService.CreateInvestment(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.create", "investment", investment.ID, c.ClientIP(), map[string]interface{}{
		"kind": investment.Kind,
		"name": investment.Name,
	})

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// ListInvestments returns the user's holdings
// @Summary     List investments
// @Description List the authenticated user's holdings, optionally filtered by kind
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       kind query string false "Filter by investment kind"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var kind *models.InvestmentKind
	if k := c.Query("kind"); k != "" {
		v := models.InvestmentKind(k)
		kind = &v
	}

	result, err := h.investmentService.GetUserInvestments(userID, page, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvestment returns one holding with its valuation
// @Summary     Get an investment
// @Description Get a holding and its valuation at the current instant
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} models.Investment "Holding with valuation summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.investmentService.GetInvestmentByID(userID, investmentID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.Summarize(userID, investment, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investment": investment,
		"summary":    summary,
	})
}

// UpdateInvestment applies a partial update
// @Summary     Update an investment
// @Description Update a holding's fields; the kind cannot change
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated holding"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := req.toInput()
	if req.Kind != nil {
		input.Kind = models.InvestmentKind(*req.Kind)
	}
	if req.Name != nil {
		input.Name = *req.Name
	}

	investment, err := h.investmentService.UpdateInvestment(userID, investmentID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.update", "investment", investment.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// DeleteInvestment removes a holding
// @Summary     Delete an investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteInvestment(userID, investmentID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.delete", "investment", investmentID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// UpdatePrice sets the market price of one holding
// @Summary     Update market price
// @Description Set the per-unit price (market kinds) or marked value (bond, real estate)
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       request body UpdatePriceRequest true "New price"
// @Success     200 {object} models.Investment "Updated holding"
// @Failure     400 {object} ErrorResponse "Kind carries no market price"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /investments/{id}/price [put]
func (h *InvestmentHandler) UpdatePrice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.UpdateMarketPrice(userID, investmentID, req.Price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "investment.price", "investment", investment.ID, c.ClientIP(), map[string]interface{}{
		"price": req.Price,
	})

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// ListKinds returns the supported investment kinds with their field schemas
// @Summary     List investment kinds
// @Description List all supported kinds with quantity labels and per-kind field schemas
// @Tags        investments
// @Produce     json
// @Success     200 {object} map[string]interface{} "Kind registry"
// @Router      /investments/kinds [get]
func (h *InvestmentHandler) ListKinds(c *gin.Context) {
	kinds := valuation.Kinds()
	out := make([]gin.H, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, gin.H{
			"kind":             kind,
			"quantity_label":   valuation.QuantityLabel(kind),
			"interest_bearing": valuation.InterestBearing(kind),
			"fields":           valuation.Schema(kind),
		})
	}
	c.JSON(http.StatusOK, gin.H{"kinds": out})
}

// ApplyPriceFeed applies a batch of market prices
// @Summary     Apply a price feed batch
// @Description Apply market prices by kind and name across all users. Guarded by the price feed API key.
// @Tags        pricefeed
// @Accept      json
// @Produce     json
// @Param       request body PriceFeedRequest true "Price updates"
// @Success     200 {object} map[string]interface{} "Number of holdings updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /pricefeed/prices [post]
func (h *InvestmentHandler) ApplyPriceFeed(c *gin.Context) {
	var req PriceFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated, err := h.investmentService.ApplyPriceFeed(req.Updates)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
