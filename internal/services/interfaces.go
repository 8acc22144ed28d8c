package services

import (
	"time"

	"nivesh/internal/models"
	"nivesh/internal/pagination"
	"nivesh/internal/valuation"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// InvestmentInput carries the writable fields of an investment. Pointer
// fields distinguish "not provided" from zero so the kind registry can
// enforce per-kind required fields and updates can stay partial.
type InvestmentInput struct {
	Kind     models.InvestmentKind
	Name     string
	Notes    *string
	Currency *string

	Quantity      *float64
	PurchasePrice *float64
	CurrentPrice  *float64

	Principal    *float64
	InterestRate *float64
	Compounding  *models.Compounding

	MonthlyDeposit *float64
	TenureMonths   *int

	MonthlyContribution *float64
	CurrentBalance      *float64
	LastUpdated         *time.Time

	MaturityAmount *float64

	SumAssured     *float64
	BonusRate      *float64
	FinalBonus     *float64
	CoverageAmount *float64
	PremiumsPaid   *float64

	FaceValue   *float64
	MarketValue *float64

	StartDate    *time.Time
	MaturityDate *time.Time
}

// PriceUpdate is one entry of a market data feed batch: every investment of
// the given kind whose name matches gets the new price.
type PriceUpdate struct {
	Kind  models.InvestmentKind `json:"kind"`
	Name  string                `json:"name"`
	Price float64               `json:"price"`
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	CreateInvestment(userID uint, input InvestmentInput) (*models.Investment, error)
	GetUserInvestments(userID uint, page pagination.PageRequest, kind *models.InvestmentKind) (*pagination.PageResponse[models.Investment], error)
	GetInvestmentByID(userID, investmentID uint) (*models.Investment, error)
	UpdateInvestment(userID, investmentID uint, input InvestmentInput) (*models.Investment, error)
	DeleteInvestment(userID, investmentID uint) error
	UpdateMarketPrice(userID, investmentID uint, price float64) (*models.Investment, error)
	ApplyPriceFeed(updates []PriceUpdate) (int64, error)
}

// PortfolioOverview is the portfolio summary enriched with the valuation
// instant and holding count.
type PortfolioOverview struct {
	AsOf time.Time `json:"as_of"`
	valuation.PortfolioSummary
	InvestmentCount int `json:"investment_count"`
}

// PortfolioServicer defines the contract for portfolio valuation queries.
// Every method takes the valuation instant explicitly; the wall clock is
// read once at the handler boundary.
type PortfolioServicer interface {
	Summary(userID uint, asOf time.Time) (*PortfolioOverview, error)
	Allocation(userID uint, asOf time.Time) ([]valuation.Allocation, error)
	Highlights(userID uint, asOf time.Time) (*valuation.Highlights, error)
	YearlyInterest(userID uint, year int, asOf time.Time) (*valuation.WindowedInterest, error)
	MonthlyInterest(userID uint, year int, asOf time.Time) ([]valuation.MonthInterest, error)
	Summarize(userID uint, inv *models.Investment, asOf time.Time) (*valuation.Summary, error)
}

// SettingsServicer defines the contract for per-user settings.
type SettingsServicer interface {
	GetSettings(userID uint) (*models.Settings, error)
	UpdateSettings(userID uint, currency *string, usdToINRRate *float64) (*models.Settings, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
