package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
	"nivesh/internal/valuation"
)

// investmentService handles investment-related business logic.
type investmentService struct {
	db *gorm.DB
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB) InvestmentServicer {
	return &investmentService{db: db}
}

// providedFields maps registry field names to whether the input carries them.
func providedFields(input InvestmentInput) map[string]bool {
	return map[string]bool{
		"quantity":             input.Quantity != nil,
		"purchase_price":       input.PurchasePrice != nil,
		"current_price":        input.CurrentPrice != nil,
		"currency":             input.Currency != nil,
		"principal":            input.Principal != nil,
		"interest_rate":        input.InterestRate != nil,
		"compounding":          input.Compounding != nil,
		"monthly_deposit":      input.MonthlyDeposit != nil,
		"tenure_months":        input.TenureMonths != nil,
		"monthly_contribution": input.MonthlyContribution != nil,
		"current_balance":      input.CurrentBalance != nil,
		"last_updated":         input.LastUpdated != nil,
		"maturity_amount":      input.MaturityAmount != nil,
		"sum_assured":          input.SumAssured != nil,
		"bonus_rate":           input.BonusRate != nil,
		"final_bonus":          input.FinalBonus != nil,
		"coverage_amount":      input.CoverageAmount != nil,
		"premiums_paid":        input.PremiumsPaid != nil,
		"face_value":           input.FaceValue != nil,
		"market_value":         input.MarketValue != nil,
		"start_date":           input.StartDate != nil,
		"maturity_date":        input.MaturityDate != nil,
	}
}

// validateRequiredFields checks the kind registry's required fields against
// the input.
func validateRequiredFields(kind models.InvestmentKind, input InvestmentInput) error {
	provided := providedFields(input)
	for _, field := range valuation.Schema(kind) {
		if field.Required && !provided[field.Name] {
			return apperrors.WithMessage(apperrors.ErrMissingKindField,
				fmt.Sprintf("Field %q is required for kind %q", field.Name, kind))
		}
	}
	return nil
}

// validateDateOrder rejects a holding whose lifecycle dates are reversed.
func validateDateOrder(inv *models.Investment) error {
	if inv.StartDate != nil && inv.MaturityDate != nil && inv.MaturityDate.Before(*inv.StartDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "maturity_date must not precede start_date")
	}
	return nil
}

// applyInput copies provided input fields onto the investment.
func applyInput(inv *models.Investment, input InvestmentInput) {
	if input.Name != "" {
		inv.Name = input.Name
	}
	if input.Notes != nil {
		inv.Notes = *input.Notes
	}
	if input.Currency != nil {
		inv.Currency = *input.Currency
	}
	if input.Quantity != nil {
		inv.Quantity = *input.Quantity
	}
	if input.PurchasePrice != nil {
		inv.PurchasePrice = *input.PurchasePrice
	}
	if input.CurrentPrice != nil {
		inv.CurrentPrice = *input.CurrentPrice
	}
	if input.Principal != nil {
		inv.Principal = *input.Principal
	}
	if input.InterestRate != nil {
		inv.InterestRate = *input.InterestRate
	}
	if input.Compounding != nil {
		inv.Compounding = *input.Compounding
	}
	if input.MonthlyDeposit != nil {
		inv.MonthlyDeposit = *input.MonthlyDeposit
	}
	if input.TenureMonths != nil {
		inv.TenureMonths = *input.TenureMonths
	}
	if input.MonthlyContribution != nil {
		inv.MonthlyContribution = *input.MonthlyContribution
	}
	if input.CurrentBalance != nil {
		inv.CurrentBalance = *input.CurrentBalance
	}
	if input.LastUpdated != nil {
		inv.LastUpdated = input.LastUpdated
	}
	if input.MaturityAmount != nil {
		inv.MaturityAmount = *input.MaturityAmount
	}
	if input.SumAssured != nil {
		inv.SumAssured = *input.SumAssured
	}
	if input.BonusRate != nil {
		inv.BonusRate = *input.BonusRate
	}
	if input.FinalBonus != nil {
		inv.FinalBonus = *input.FinalBonus
	}
	if input.CoverageAmount != nil {
		inv.CoverageAmount = *input.CoverageAmount
	}
	if input.PremiumsPaid != nil {
		inv.PremiumsPaid = *input.PremiumsPaid
	}
	if input.FaceValue != nil {
		inv.FaceValue = *input.FaceValue
	}
	if input.MarketValue != nil {
		inv.MarketValue = *input.MarketValue
	}
	if input.StartDate != nil {
		inv.StartDate = input.StartDate
	}
	if input.MaturityDate != nil {
		inv.MaturityDate = input.MaturityDate
	}
}

// CreateInvestment validates the input against the kind registry and stores
// a new holding.
func (s *investmentService) CreateInvestment(userID uint, input InvestmentInput) (*models.Investment, error) {
	if !valuation.KnownKind(input.Kind) {
		return nil, apperrors.ErrUnknownInvestmentKind
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if err := validateRequiredFields(input.Kind, input); err != nil {
		return nil, err
	}

	investment := &models.Investment{
		UserID:   userID,
		Kind:     input.Kind,
		Currency: "INR",
	}
	applyInput(investment, input)

	if err := validateDateOrder(investment); err != nil {
		return nil, err
	}

	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// GetUserInvestments returns a paginated list of the user's investments,
// optionally filtered by kind.
func (s *investmentService) GetUserInvestments(userID uint, page pagination.PageRequest, kind *models.InvestmentKind) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)
	if kind != nil {
		if !valuation.KnownKind(*kind) {
			return nil, apperrors.ErrUnknownInvestmentKind
		}
		base = base.Where("kind = ?", *kind)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInvestmentByID returns an investment if it belongs to the user.
func (s *investmentService) GetInvestmentByID(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if investment.UserID != userID {
		return nil, apperrors.ErrInvestmentNotFound
	}

	return &investment, nil
}

// UpdateInvestment applies a partial update. The kind is immutable once
// set; changing it would invalidate the stored field group.
func (s *investmentService) UpdateInvestment(userID, investmentID uint, input InvestmentInput) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	if input.Kind != "" && input.Kind != investment.Kind {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Investment kind cannot be changed")
	}

	applyInput(investment, input)

	if err := validateDateOrder(investment); err != nil {
		return nil, err
	}

	if err := s.db.Save(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// DeleteInvestment soft-deletes an investment.
func (s *investmentService) DeleteInvestment(userID, investmentID uint) error {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}

// UpdateMarketPrice sets the market price of a single holding. For
// quantity-priced kinds this is the per-unit price; for bonds and real
// estate it is the marked value. Kinds valued by formula carry no price.
func (s *investmentService) UpdateMarketPrice(userID, investmentID uint, price float64) (*models.Investment, error) {
	investment, err := s.GetInvestmentByID(userID, investmentID)
	if err != nil {
		return nil, err
	}

	var column string
	switch {
	case valuation.QuantityLabel(investment.Kind) != "":
		column = "current_price"
		investment.CurrentPrice = price
	case investment.Kind == models.KindBond || investment.Kind == models.KindRealEstate:
		column = "market_value"
		investment.MarketValue = price
	default:
		return nil, apperrors.ErrPriceNotApplicable
	}

	if err := s.db.Model(investment).Update(column, price).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return investment, nil
}

// ApplyPriceFeed applies a batch of market prices across all users. Each
// update matches holdings by kind and name. Returns the number of rows
// touched.
func (s *investmentService) ApplyPriceFeed(updates []PriceUpdate) (int64, error) {
	var touched int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if valuation.QuantityLabel(u.Kind) == "" {
				return apperrors.WithMessage(apperrors.ErrPriceNotApplicable,
					fmt.Sprintf("Kind %q does not carry a market price", u.Kind))
			}
			res := tx.Model(&models.Investment{}).
				Where("kind = ? AND name = ?", u.Kind, u.Name).
				Update("current_price", u.Price)
			if res.Error != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
			}
			touched += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}
