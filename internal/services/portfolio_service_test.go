package services

import (
	"testing"
	"time"

	"nivesh/internal/models"
	"nivesh/internal/testutil"
)

func TestPortfolioSummary(t *testing.T) {
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates_holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewSettingsService(db))
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestStock(t, db, user.ID, 10, 100, 120)
		testutil.CreateTestCash(t, db, user.ID, 50000)

		overview, err := svc.Summary(user.ID, asOf)
		testutil.AssertNoError(t, err)

		testutil.AssertInDelta(t, 51000, overview.TotalInvested, 1e-6)
		testutil.AssertInDelta(t, 51200, overview.TotalCurrent, 1e-6)
		testutil.AssertInDelta(t, 200, overview.TotalReturns, 1e-6)
		if overview.InvestmentCount != 2 {
			t.Errorf("expected 2 holdings, got %d", overview.InvestmentCount)
		}
		if !overview.AsOf.Equal(asOf) {
			t.Errorf("expected as_of %v, got %v", asOf, overview.AsOf)
		}
	})

	t.Run("applies_usd_rate_from_settings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		invSvc := NewInvestmentService(db)
		svc := NewPortfolioService(db, NewSettingsService(db))
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestSettings(t, db, user.ID, 80)

		_, err := invSvc.CreateInvestment(user.ID, InvestmentInput{
			Kind:          models.KindUSStock,
			Name:          "AAPL",
			Currency:      sptr("USD"),
			Quantity:      fptr(5),
			PurchasePrice: fptr(100),
			CurrentPrice:  fptr(120),
		})
		testutil.AssertNoError(t, err)

		overview, err := svc.Summary(user.ID, asOf)
		testutil.AssertNoError(t, err)

		testutil.AssertInDelta(t, 5*100*80, overview.TotalInvested, 1e-6)
		testutil.AssertInDelta(t, 5*120*80, overview.TotalCurrent, 1e-6)
	})

	t.Run("empty_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db, NewSettingsService(db))
		user := testutil.CreateTestUser(t, db)

		overview, err := svc.Summary(user.ID, asOf)
		testutil.AssertNoError(t, err)

		if overview.TotalInvested != 0 || overview.InvestmentCount != 0 {
			t.Errorf("expected empty overview, got %+v", overview)
		}
	})
}

func TestPortfolioAllocation(t *testing.T) {
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewSettingsService(db))
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestStock(t, db, user.ID, 10, 100, 300) // 3000
	testutil.CreateTestCash(t, db, user.ID, 1000)

	allocs, err := svc.Allocation(user.ID, asOf)
	testutil.AssertNoError(t, err)

	if len(allocs) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(allocs))
	}
	if allocs[0].Kind != models.KindStock {
		t.Errorf("expected stock first, got %s", allocs[0].Kind)
	}
	testutil.AssertInDelta(t, 75, allocs[0].Percentage, 1e-6)
	testutil.AssertInDelta(t, 25, allocs[1].Percentage, 1e-6)
}

func TestPortfolioHighlights(t *testing.T) {
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewSettingsService(db))
	user := testutil.CreateTestUser(t, db)

	winner := testutil.CreateTestStock(t, db, user.ID, 10, 100, 200)
	testutil.CreateTestStock(t, db, user.ID, 10, 100, 90)

	h, err := svc.Highlights(user.ID, asOf)
	testutil.AssertNoError(t, err)

	if len(h.TopPerformers) != 2 {
		t.Fatalf("expected 2 performers, got %d", len(h.TopPerformers))
	}
	if h.TopPerformers[0].ID != winner.ID {
		t.Errorf("expected %d on top, got %d", winner.ID, h.TopPerformers[0].ID)
	}
}

func TestPortfolioInterest(t *testing.T) {
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewSettingsService(db))
	user := testutil.CreateTestUser(t, db)

	start := time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestFixedDeposit(t, db, user.ID, 100000, 7, start, 5)
	testutil.CreateTestCash(t, db, user.ID, 50000)

	t.Run("yearly", func(t *testing.T) {
		w, err := svc.YearlyInterest(user.ID, 2023, asOf)
		testutil.AssertNoError(t, err)

		if w.Total <= 0 {
			t.Errorf("expected positive interest, got %f", w.Total)
		}
		if _, ok := w.ByKind[models.KindFixedDeposit]; !ok {
			t.Error("expected fixed_deposit in breakdown")
		}
		if _, ok := w.ByKind[models.KindCash]; ok {
			t.Error("cash should not earn interest")
		}
	})

	t.Run("monthly", func(t *testing.T) {
		months, err := svc.MonthlyInterest(user.ID, 2024, asOf)
		testutil.AssertNoError(t, err)

		if len(months) != 12 {
			t.Fatalf("expected 12 entries, got %d", len(months))
		}
		if months[0].Future {
			t.Error("January 2024 should not be future")
		}
		if !months[11].Future {
			t.Error("December 2024 should be future")
		}
	})
}

func TestPortfolioSummarize(t *testing.T) {
	asOf := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db, NewSettingsService(db))
	user := testutil.CreateTestUser(t, db)
	inv := testutil.CreateTestStock(t, db, user.ID, 10, 100, 120)

	summary, err := svc.Summarize(user.ID, inv, asOf)
	testutil.AssertNoError(t, err)

	testutil.AssertInDelta(t, 1000, summary.Invested, 1e-6)
	testutil.AssertInDelta(t, 1200, summary.Current, 1e-6)
	if summary.QuantityLabel != "shares" {
		t.Errorf("expected shares label, got %q", summary.QuantityLabel)
	}
}
