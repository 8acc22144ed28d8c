package models

// DefaultUSDToINRRate seeds new settings rows until the user configures
// their own rate.
const DefaultUSDToINRRate = 83.0

// Settings holds per-user reporting preferences. The valuation engine
// consumes these values but never writes them.
type Settings struct {
	Base
	UserID       uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Currency     string  `gorm:"size:3;not null;default:INR" json:"currency"`
	USDToINRRate float64 `gorm:"not null;default:83" json:"usd_to_inr_rate"`
}
