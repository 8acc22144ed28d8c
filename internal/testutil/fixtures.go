package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"nivesh/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSettings creates a settings row with the given USD/INR rate.
func CreateTestSettings(t *testing.T, db *gorm.DB, userID uint, usdToINR float64) *models.Settings {
	t.Helper()

	settings := &models.Settings{
		UserID:       userID,
		Currency:     "INR",
		USDToINRRate: usdToINR,
	}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}

// CreateTestStock creates a quantity-priced stock holding.
func CreateTestStock(t *testing.T, db *gorm.DB, userID uint, quantity, purchasePrice, currentPrice float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:        userID,
		Kind:          models.KindStock,
		Name:          fmt.Sprintf("Test Stock %d", nextID()),
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		Currency:      "INR",
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test stock: %v", err)
	}
	return inv
}

// CreateTestFixedDeposit creates a fixed deposit starting at the given date.
func CreateTestFixedDeposit(t *testing.T, db *gorm.DB, userID uint, principal, rate float64, start time.Time, tenureYears int) *models.Investment {
	t.Helper()

	maturity := start.AddDate(tenureYears, 0, 0)
	inv := &models.Investment{
		UserID:       userID,
		Kind:         models.KindFixedDeposit,
		Name:         fmt.Sprintf("Test FD %d", nextID()),
		Principal:    principal,
		InterestRate: rate,
		Compounding:  models.CompoundingQuarterly,
		Currency:     "INR",
		StartDate:    &start,
		MaturityDate: &maturity,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test fixed deposit: %v", err)
	}
	return inv
}

// CreateTestProvidentFund creates a PPF holding with a balance baseline.
func CreateTestProvidentFund(t *testing.T, db *gorm.DB, userID uint, balance, contribution, rate float64, lastUpdated time.Time) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:              userID,
		Kind:                models.KindPPF,
		Name:                fmt.Sprintf("Test PPF %d", nextID()),
		CurrentBalance:      balance,
		MonthlyContribution: contribution,
		InterestRate:        rate,
		Currency:            "INR",
		LastUpdated:         &lastUpdated,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test provident fund: %v", err)
	}
	return inv
}

// CreateTestCash creates a cash holding with the given amount.
func CreateTestCash(t *testing.T, db *gorm.DB, userID uint, amount float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:    userID,
		Kind:      models.KindCash,
		Name:      fmt.Sprintf("Test Cash %d", nextID()),
		Principal: amount,
		Currency:  "INR",
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test cash holding: %v", err)
	}
	return inv
}
