package models

import "time"

// InvestmentKind discriminates the supported investment variants.
type InvestmentKind string

// Market-priced instruments.
const (
	KindGold       InvestmentKind = "gold"
	KindSilver     InvestmentKind = "silver"
	KindStock      InvestmentKind = "stock"
	KindUSStock    InvestmentKind = "us_stock"
	KindETF        InvestmentKind = "etf"
	KindMutualFund InvestmentKind = "mutual_fund"
	KindCrypto     InvestmentKind = "crypto"
	KindSGB        InvestmentKind = "sgb"
)

// Bank and post-office deposits.
const (
	KindFixedDeposit     InvestmentKind = "fixed_deposit"
	KindRecurringDeposit InvestmentKind = "recurring_deposit"
	KindKVP              InvestmentKind = "kvp"
	KindNSC              InvestmentKind = "nsc"
	KindSCSS             InvestmentKind = "scss"
	KindPostOfficeMIS    InvestmentKind = "post_office_mis"
)

// Provident and pension funds.
const (
	KindEPF InvestmentKind = "epf"
	KindPPF InvestmentKind = "ppf"
	KindNPS InvestmentKind = "nps"
	KindSSY InvestmentKind = "ssy"
)

// Insurance policies.
const (
	KindInsuranceEndowment InvestmentKind = "insurance_endowment"
	KindInsuranceMoneyback InvestmentKind = "insurance_moneyback"
	KindInsuranceTerm      InvestmentKind = "insurance_term"
)

// Everything else.
const (
	KindBond       InvestmentKind = "bond"
	KindRealEstate InvestmentKind = "real_estate"
	KindCash       InvestmentKind = "cash"
)

// Compounding is the interest capitalization frequency for deposits.
type Compounding string

const (
	CompoundingMonthly    Compounding = "monthly"
	CompoundingQuarterly  Compounding = "quarterly"
	CompoundingHalfYearly Compounding = "half_yearly"
	CompoundingYearly     Compounding = "yearly"
	CompoundingSimple     Compounding = "simple"
)

// Investment is a single holding. The kind discriminator selects which of
// the optional field groups is meaningful; unused numeric columns stay at
// their zero value so valuation arithmetic never sees NULLs.
type Investment struct {
	Base
	UserID uint           `gorm:"not null;index" json:"user_id"`
	Kind   InvestmentKind `gorm:"not null;index" json:"kind"`
	Name   string         `json:"name"`
	Notes  string         `json:"notes"`

	// Market-priced instruments (gold, silver, stock, etf, mutual fund,
	// crypto, SGB). Prices are per unit in the instrument's currency.
	Quantity      float64 `gorm:"not null;default:0" json:"quantity"`
	PurchasePrice float64 `gorm:"not null;default:0" json:"purchase_price"`
	CurrentPrice  float64 `gorm:"not null;default:0" json:"current_price"`
	Currency      string  `gorm:"size:3;not null;default:INR" json:"currency"`

	// Interest-bearing instruments.
	Principal    float64     `gorm:"not null;default:0" json:"principal"`
	InterestRate float64     `gorm:"not null;default:0" json:"interest_rate"`
	Compounding  Compounding `json:"compounding,omitempty"`

	// Recurring deposit.
	MonthlyDeposit float64 `gorm:"not null;default:0" json:"monthly_deposit"`
	TenureMonths   int     `gorm:"not null;default:0" json:"tenure_months"`

	// Provident/pension funds (EPF, PPF, NPS, SSY). CurrentBalance is the
	// running balance as of LastUpdated.
	MonthlyContribution float64    `gorm:"not null;default:0" json:"monthly_contribution"`
	CurrentBalance      float64    `gorm:"not null;default:0" json:"current_balance"`
	LastUpdated         *time.Time `json:"last_updated,omitempty"`

	// Certificates with a known maturity payout (KVP, NSC).
	MaturityAmount float64 `gorm:"not null;default:0" json:"maturity_amount"`

	// Insurance.
	SumAssured     float64 `gorm:"not null;default:0" json:"sum_assured"`
	BonusRate      float64 `gorm:"not null;default:0" json:"bonus_rate"`
	FinalBonus     float64 `gorm:"not null;default:0" json:"final_bonus"`
	CoverageAmount float64 `gorm:"not null;default:0" json:"coverage_amount"`
	PremiumsPaid   float64 `gorm:"not null;default:0" json:"premiums_paid"`

	// Bonds and market-marked assets (real estate).
	FaceValue   float64 `gorm:"not null;default:0" json:"face_value"`
	MarketValue float64 `gorm:"not null;default:0" json:"market_value"`

	// Lifecycle.
	StartDate    *time.Time `json:"start_date,omitempty"`
	MaturityDate *time.Time `json:"maturity_date,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
