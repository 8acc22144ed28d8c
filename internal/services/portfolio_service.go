package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/valuation"
)

// portfolioService answers valuation queries over a user's holdings. All
// arithmetic lives in the valuation package; this layer only loads the
// snapshot and the exchange rates.
type portfolioService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, settings SettingsServicer) PortfolioServicer {
	return &portfolioService{db: db, settings: settings}
}

// loadSnapshot fetches the user's holdings and exchange rates.
func (s *portfolioService) loadSnapshot(userID uint) ([]models.Investment, valuation.Rates, error) {
	var investments []models.Investment
	if err := s.db.Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, valuation.Rates{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings, err := s.settings.GetSettings(userID)
	if err != nil {
		return nil, valuation.Rates{}, err
	}

	return investments, valuation.Rates{USDToINR: settings.USDToINRRate}, nil
}

// Summary returns the aggregated portfolio value at the given instant.
func (s *portfolioService) Summary(userID uint, asOf time.Time) (*PortfolioOverview, error) {
	investments, rates, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}

	overview := &PortfolioOverview{
		AsOf:             asOf,
		PortfolioSummary: valuation.Aggregate(investments, rates, asOf),
		InvestmentCount:  len(investments),
	}
	return overview, nil
}

// Allocation returns the portfolio value grouped by kind.
func (s *portfolioService) Allocation(userID uint, asOf time.Time) ([]valuation.Allocation, error) {
	investments, rates, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return valuation.AllocationByKind(investments, rates, asOf), nil
}

// Highlights returns the best and worst performing holdings.
func (s *portfolioService) Highlights(userID uint, asOf time.Time) (*valuation.Highlights, error) {
	investments, rates, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	h := valuation.PerformanceHighlights(investments, rates, asOf)
	return &h, nil
}

// YearlyInterest returns the interest earned in the given calendar year.
func (s *portfolioService) YearlyInterest(userID uint, year int, asOf time.Time) (*valuation.WindowedInterest, error) {
	investments, _, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	w := valuation.YearlyInterest(investments, year, asOf)
	return &w, nil
}

// MonthlyInterest returns the per-month interest for the given calendar year.
func (s *portfolioService) MonthlyInterest(userID uint, year int, asOf time.Time) ([]valuation.MonthInterest, error) {
	investments, _, err := s.loadSnapshot(userID)
	if err != nil {
		return nil, err
	}
	return valuation.MonthlyInterest(investments, year, asOf), nil
}

// Summarize values a single holding with the user's exchange rates.
func (s *portfolioService) Summarize(userID uint, inv *models.Investment, asOf time.Time) (*valuation.Summary, error) {
	settings, err := s.settings.GetSettings(userID)
	if err != nil {
		return nil, err
	}
	summary := valuation.Summarize(*inv, valuation.Rates{USDToINR: settings.USDToINRRate}, asOf)
	return &summary, nil
}
