package valuation

import (
	"math"
	"testing"
	"time"

	"nivesh/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

// inDelta fails the test unless got is within delta of want.
func inDelta(t *testing.T, want, got, delta float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(want-got) > delta {
		t.Errorf("want %v, got %v (delta %v)", want, got, delta)
	}
}

var noFX = Rates{USDToINR: 83}

func TestQuantityPricedValuation(t *testing.T) {
	t.Run("gold", func(t *testing.T) {
		inv := models.Investment{
			Kind:          models.KindGold,
			Quantity:      10,
			PurchasePrice: 6000,
			CurrentPrice:  6500,
			Currency:      "INR",
		}
		now := date(2024, time.January, 1)
		inDelta(t, 60000, InvestedAmount(inv, noFX, now), 1e-9)
		inDelta(t, 65000, CurrentValue(inv, noFX, now), 1e-9)
		inDelta(t, 5000, Returns(inv, noFX, now), 1e-9)
		inDelta(t, 8.3333, ReturnsPercentage(inv, noFX, now), 1e-3)
	})

	t.Run("us_stock_converts_to_inr", func(t *testing.T) {
		inv := models.Investment{
			Kind:          models.KindUSStock,
			Quantity:      5,
			PurchasePrice: 100,
			CurrentPrice:  120,
			Currency:      "USD",
		}
		now := date(2024, time.January, 1)
		inDelta(t, 41500, InvestedAmount(inv, noFX, now), 1e-9)
		inDelta(t, 49800, CurrentValue(inv, noFX, now), 1e-9)
	})

	t.Run("missing_rate_passes_through", func(t *testing.T) {
		inv := models.Investment{
			Kind:          models.KindCrypto,
			Quantity:      2,
			PurchasePrice: 30000,
			CurrentPrice:  35000,
			Currency:      "USD",
		}
		now := date(2024, time.January, 1)
		inDelta(t, 60000, InvestedAmount(inv, Rates{}, now), 1e-9)
		inDelta(t, 70000, CurrentValue(inv, Rates{}, now), 1e-9)
	})
}

func TestFixedDepositValuation(t *testing.T) {
	t.Run("quarterly_one_year", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    100000,
			InterestRate: 7,
			Compounding:  models.CompoundingQuarterly,
			StartDate:    datePtr(2023, time.January, 1),
			MaturityDate: datePtr(2024, time.January, 1),
		}
		now := date(2024, time.January, 1)
		inDelta(t, 100000, InvestedAmount(inv, noFX, now), 1e-9)
		inDelta(t, 107180.81, CurrentValue(inv, noFX, now), 0.01)
		inDelta(t, 7180.81, Returns(inv, noFX, now), 0.01)
	})

	t.Run("simple_one_year", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    100000,
			InterestRate: 7,
			Compounding:  models.CompoundingSimple,
			StartDate:    datePtr(2023, time.January, 1),
			MaturityDate: datePtr(2024, time.January, 1),
		}
		inDelta(t, 106995.21, CurrentValue(inv, noFX, date(2024, time.January, 1)), 0.01)
	})

	t.Run("monthly_compounding", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    200000,
			InterestRate: 6.5,
			Compounding:  models.CompoundingMonthly,
			StartDate:    datePtr(2022, time.January, 1),
		}
		inDelta(t, 220350.94, CurrentValue(inv, noFX, date(2023, time.July, 1)), 0.01)
	})

	t.Run("stops_accruing_at_maturity", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    100000,
			InterestRate: 7,
			Compounding:  models.CompoundingQuarterly,
			StartDate:    datePtr(2023, time.January, 1),
			MaturityDate: datePtr(2024, time.January, 1),
		}
		atMaturity := CurrentValue(inv, noFX, date(2024, time.January, 1))
		longAfter := CurrentValue(inv, noFX, date(2030, time.January, 1))
		inDelta(t, atMaturity, longAfter, 1e-9)
	})

	t.Run("before_start_is_principal", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    100000,
			InterestRate: 7,
			Compounding:  models.CompoundingYearly,
			StartDate:    datePtr(2025, time.January, 1),
		}
		inDelta(t, 100000, CurrentValue(inv, noFX, date(2024, time.January, 1)), 1e-9)
	})

	t.Run("missing_start_is_principal", func(t *testing.T) {
		inv := models.Investment{
			Kind:         models.KindFixedDeposit,
			Principal:    100000,
			InterestRate: 7,
		}
		inDelta(t, 100000, CurrentValue(inv, noFX, date(2024, time.January, 1)), 1e-9)
	})
}

func TestRecurringDepositValuation(t *testing.T) {
	rd := models.Investment{
		Kind:           models.KindRecurringDeposit,
		MonthlyDeposit: 1000,
		InterestRate:   6.7,
		TenureMonths:   60,
		StartDate:      datePtr(2023, time.January, 1),
	}

	t.Run("full_tenure_matches_annuity_closed_form", func(t *testing.T) {
		now := date(2028, time.June, 1)
		inDelta(t, 60000, InvestedAmount(rd, noFX, now), 1e-9)
		inDelta(t, 71365.83, CurrentValue(rd, noFX, now), 0.01)
	})

	t.Run("mid_tenure", func(t *testing.T) {
		// 30 whole months elapsed by mid-July 2025.
		now := date(2025, time.July, 15)
		inDelta(t, 30000, InvestedAmount(rd, noFX, now), 1e-9)
		inDelta(t, 32726.02, CurrentValue(rd, noFX, now), 0.01)
	})

	t.Run("zero_rate_is_deposits", func(t *testing.T) {
		flat := rd
		flat.InterestRate = 0
		now := date(2025, time.July, 15)
		inDelta(t, 30000, CurrentValue(flat, noFX, now), 1e-9)
	})

	t.Run("before_start_is_zero", func(t *testing.T) {
		now := date(2022, time.June, 1)
		inDelta(t, 0, InvestedAmount(rd, noFX, now), 1e-9)
		inDelta(t, 0, CurrentValue(rd, noFX, now), 1e-9)
		inDelta(t, 0, ReturnsPercentage(rd, noFX, now), 1e-9)
	})
}

func TestProvidentFundValuation(t *testing.T) {
	epf := models.Investment{
		Kind:                models.KindEPF,
		CurrentBalance:      500000,
		MonthlyContribution: 5000,
		InterestRate:        8.1,
		LastUpdated:         datePtr(2023, time.January, 1),
	}

	t.Run("accrues_month_by_month", func(t *testing.T) {
		// 12 whole months elapsed by mid-January 2024.
		now := date(2024, time.January, 15)
		inDelta(t, 560000, InvestedAmount(epf, noFX, now), 1e-9)
		inDelta(t, 604736.68, CurrentValue(epf, noFX, now), 0.01)
	})

	t.Run("zero_contribution_reduces_to_compound_interest", func(t *testing.T) {
		idle := epf
		idle.MonthlyContribution = 0
		now := date(2024, time.January, 15)
		months := WholeMonthsBetween(*idle.LastUpdated, now)
		want := idle.CurrentBalance * math.Pow(1+idle.InterestRate/1200, float64(months))
		inDelta(t, want, CurrentValue(idle, noFX, now), 0.01)
	})

	t.Run("no_baseline_date_is_balance", func(t *testing.T) {
		bare := models.Investment{
			Kind:           models.KindPPF,
			CurrentBalance: 250000,
			InterestRate:   7.1,
		}
		inDelta(t, 250000, CurrentValue(bare, noFX, date(2024, time.January, 1)), 1e-9)
	})
}

func TestCertificateValuation(t *testing.T) {
	kvp := models.Investment{
		Kind:           models.KindKVP,
		Principal:      50000,
		MaturityAmount: 100000,
		StartDate:      datePtr(2020, time.January, 1),
		MaturityDate:   datePtr(2030, time.January, 1),
	}

	t.Run("interpolates_proportionally", func(t *testing.T) {
		inDelta(t, 75006.84, CurrentValue(kvp, noFX, date(2025, time.January, 1)), 0.01)
	})
	t.Run("clamps_before_start", func(t *testing.T) {
		inDelta(t, 50000, CurrentValue(kvp, noFX, date(2019, time.June, 1)), 1e-9)
	})
	t.Run("clamps_at_maturity", func(t *testing.T) {
		inDelta(t, 100000, CurrentValue(kvp, noFX, date(2030, time.January, 1)), 1e-9)
		inDelta(t, 100000, CurrentValue(kvp, noFX, date(2035, time.January, 1)), 1e-9)
	})
}

func TestPayoutSchemeValuation(t *testing.T) {
	scss := models.Investment{
		Kind:         models.KindSCSS,
		Principal:    1500000,
		InterestRate: 8.2,
		StartDate:    datePtr(2023, time.January, 1),
		MaturityDate: datePtr(2028, time.January, 1),
	}
	inDelta(t, 1622915.81, CurrentValue(scss, noFX, date(2024, time.January, 1)), 0.01)
}

func TestInsuranceValuation(t *testing.T) {
	policy := models.Investment{
		Kind:         models.KindInsuranceEndowment,
		SumAssured:   1000000,
		BonusRate:    45,
		FinalBonus:   150000,
		PremiumsPaid: 300000,
		StartDate:    datePtr(2018, time.June, 15),
		MaturityDate: datePtr(2033, time.June, 15),
	}

	t.Run("accrues_bonus_per_completed_year", func(t *testing.T) {
		now := date(2024, time.January, 1)
		inDelta(t, 300000, InvestedAmount(policy, noFX, now), 1e-9)
		inDelta(t, 1225000, CurrentValue(policy, noFX, now), 1e-6)
	})

	t.Run("adds_final_bonus_at_maturity", func(t *testing.T) {
		now := date(2033, time.June, 15)
		inDelta(t, 1000000+45*1000*15+150000, CurrentValue(policy, noFX, now), 1e-6)
	})

	t.Run("term_policy_is_flat_coverage", func(t *testing.T) {
		term := models.Investment{
			Kind:           models.KindInsuranceTerm,
			CoverageAmount: 10000000,
			PremiumsPaid:   50000,
		}
		inDelta(t, 10000000, CurrentValue(term, noFX, date(2024, time.January, 1)), 1e-9)
	})
}

func TestBondAndMarkedAssets(t *testing.T) {
	t.Run("bond_uses_market_value", func(t *testing.T) {
		bond := models.Investment{Kind: models.KindBond, FaceValue: 100000, MarketValue: 98500}
		now := date(2024, time.January, 1)
		inDelta(t, 100000, InvestedAmount(bond, noFX, now), 1e-9)
		inDelta(t, 98500, CurrentValue(bond, noFX, now), 1e-9)
		inDelta(t, -1500, Returns(bond, noFX, now), 1e-9)
	})

	t.Run("unmarked_bond_falls_back_to_face_value", func(t *testing.T) {
		bond := models.Investment{Kind: models.KindBond, FaceValue: 100000}
		inDelta(t, 100000, CurrentValue(bond, noFX, date(2024, time.January, 1)), 1e-9)
	})

	t.Run("real_estate", func(t *testing.T) {
		re := models.Investment{Kind: models.KindRealEstate, Principal: 5000000, MarketValue: 7200000}
		now := date(2024, time.January, 1)
		inDelta(t, 5000000, InvestedAmount(re, noFX, now), 1e-9)
		inDelta(t, 7200000, CurrentValue(re, noFX, now), 1e-9)
	})

	t.Run("cash", func(t *testing.T) {
		cash := models.Investment{Kind: models.KindCash, Principal: 100000}
		now := date(2024, time.January, 1)
		inDelta(t, 100000, CurrentValue(cash, noFX, now), 1e-9)
		inDelta(t, 0, Returns(cash, noFX, now), 1e-9)
	})
}

func TestUnknownKindValuesToZero(t *testing.T) {
	inv := models.Investment{Kind: "chit_fund", Principal: 100000, Quantity: 5}
	now := date(2024, time.January, 1)
	inDelta(t, 0, InvestedAmount(inv, noFX, now), 1e-9)
	inDelta(t, 0, CurrentValue(inv, noFX, now), 1e-9)
	inDelta(t, 0, Returns(inv, noFX, now), 1e-9)
	inDelta(t, 0, ReturnsPercentage(inv, noFX, now), 1e-9)
}

func TestReturnsPercentageZeroInvested(t *testing.T) {
	inv := models.Investment{Kind: models.KindStock, Quantity: 10, CurrentPrice: 500}
	got := ReturnsPercentage(inv, noFX, date(2024, time.January, 1))
	if got != 0 {
		t.Errorf("expected 0 for zero invested, got %v", got)
	}
}

// sampleInstruments covers every valuation family with realistic data.
func sampleInstruments() []models.Investment {
	return []models.Investment{
		{Base: models.Base{ID: 1}, Kind: models.KindGold, Name: "Wedding gold", Quantity: 20, PurchasePrice: 5500, CurrentPrice: 6400, Currency: "INR"},
		{Base: models.Base{ID: 2}, Kind: models.KindStock, Name: "Reliance", Quantity: 50, PurchasePrice: 2400, CurrentPrice: 2900, Currency: "INR"},
		{Base: models.Base{ID: 3}, Kind: models.KindUSStock, Name: "Apple", Quantity: 4, PurchasePrice: 150, CurrentPrice: 190, Currency: "USD"},
		{Base: models.Base{ID: 4}, Kind: models.KindFixedDeposit, Name: "SBI FD", Principal: 200000, InterestRate: 7.1, Compounding: models.CompoundingQuarterly, StartDate: datePtr(2022, time.April, 1), MaturityDate: datePtr(2027, time.April, 1)},
		{Base: models.Base{ID: 5}, Kind: models.KindRecurringDeposit, Name: "Post office RD", MonthlyDeposit: 2000, InterestRate: 6.7, TenureMonths: 60, StartDate: datePtr(2022, time.June, 1)},
		{Base: models.Base{ID: 6}, Kind: models.KindEPF, Name: "EPF", CurrentBalance: 800000, MonthlyContribution: 8000, InterestRate: 8.25, LastUpdated: datePtr(2023, time.April, 1)},
		{Base: models.Base{ID: 7}, Kind: models.KindNSC, Name: "NSC VIII", Principal: 100000, MaturityAmount: 140255, StartDate: datePtr(2021, time.March, 1), MaturityDate: datePtr(2026, time.March, 1)},
		{Base: models.Base{ID: 8}, Kind: models.KindInsuranceEndowment, Name: "LIC policy", SumAssured: 500000, BonusRate: 42, PremiumsPaid: 180000, StartDate: datePtr(2016, time.August, 10), MaturityDate: datePtr(2036, time.August, 10)},
		{Base: models.Base{ID: 9}, Kind: models.KindBond, Name: "NHAI bond", FaceValue: 150000, MarketValue: 147000, InterestRate: 7.19, StartDate: datePtr(2022, time.January, 15), MaturityDate: datePtr(2032, time.January, 15)},
	}
}

func TestValueIdentityAcrossKinds(t *testing.T) {
	nows := []time.Time{
		date(2021, time.January, 1),
		date(2023, time.September, 20),
		date(2024, time.June, 1),
		date(2031, time.December, 31),
	}
	for _, inv := range sampleInstruments() {
		for _, now := range nows {
			invested := InvestedAmount(inv, noFX, now)
			current := CurrentValue(inv, noFX, now)
			returns := Returns(inv, noFX, now)
			if got := invested + returns; math.Abs(got-current) > 1e-6 {
				t.Errorf("%s at %s: invested+returns = %v, current = %v", inv.Kind, now, got, current)
			}
			if invested < 0 || current < 0 {
				t.Errorf("%s at %s: negative valuation invested=%v current=%v", inv.Kind, now, invested, current)
			}
		}
	}
}

func TestValuationIsIdempotent(t *testing.T) {
	now := date(2024, time.June, 1)
	for _, inv := range sampleInstruments() {
		first := CurrentValue(inv, noFX, now)
		second := CurrentValue(inv, noFX, now)
		if first != second {
			t.Errorf("%s: repeated evaluation differs: %v then %v", inv.Kind, first, second)
		}
	}
}
