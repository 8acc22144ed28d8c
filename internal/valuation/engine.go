// Package valuation is the pure calculation core of the tracker: given an
// immutable snapshot of investments, an exchange-rate snapshot, and an
// explicit "now", it computes invested amounts, present values, returns,
// portfolio allocation, and time-windowed interest attribution.
//
// Every function here is total: unknown kinds value to zero, missing
// numeric fields are zero, and division by zero yields zero. Nothing in
// this package reads the wall clock, touches I/O, or mutates its inputs.
package valuation

import (
	"math"
	"time"

	"nivesh/internal/models"
)

// sgbCouponRate is the fixed annual coupon on sovereign gold bonds,
// paid on the issue price.
const sgbCouponRate = 2.5

// periodsPerYear maps a compounding frequency to the number of
// capitalization periods per year. Simple (and unknown) frequencies
// return 0, which selects the non-compounding formula.
func periodsPerYear(c models.Compounding) float64 {
	switch c {
	case models.CompoundingMonthly:
		return 12
	case models.CompoundingQuarterly:
		return 4
	case models.CompoundingHalfYearly:
		return 2
	case models.CompoundingYearly:
		return 1
	default:
		return 0
	}
}

// InvestedAmount returns the principal put into the instrument as of now,
// in rupees. Periodic instruments (recurring deposits, provident funds)
// keep investing over time, so the clock threads through here as well.
// Unknown kinds return 0.
func InvestedAmount(inv models.Investment, fx Rates, now time.Time) float64 {
	switch inv.Kind {
	case models.KindGold, models.KindSilver, models.KindStock,
		models.KindUSStock, models.KindETF, models.KindMutualFund,
		models.KindCrypto, models.KindSGB:
		return fx.ToINR(inv.Quantity*inv.PurchasePrice, inv.Currency)

	case models.KindFixedDeposit, models.KindKVP, models.KindNSC,
		models.KindSCSS, models.KindPostOfficeMIS, models.KindCash:
		return inv.Principal

	case models.KindRecurringDeposit:
		// Deposits made so far; future installments are not yet invested.
		return inv.MonthlyDeposit * float64(rdMonthsElapsed(inv, now))

	case models.KindEPF, models.KindPPF, models.KindNPS, models.KindSSY:
		// The stored balance is the only record of contributions made
		// before tracking began, so it counts as invested along with
		// contributions since.
		return inv.CurrentBalance + inv.MonthlyContribution*float64(providentMonthsElapsed(inv, now))

	case models.KindInsuranceEndowment, models.KindInsuranceMoneyback,
		models.KindInsuranceTerm:
		return inv.PremiumsPaid

	case models.KindBond:
		return inv.FaceValue

	case models.KindRealEstate:
		return inv.Principal

	default:
		return 0
	}
}

// CurrentValue returns the instrument's present value in rupees as of now.
// Matured instruments stop accruing: every date-based formula evaluates at
// min(now, maturityDate). Unknown kinds return 0.
func CurrentValue(inv models.Investment, fx Rates, now time.Time) float64 {
	switch inv.Kind {
	case models.KindGold, models.KindSilver, models.KindStock,
		models.KindUSStock, models.KindETF, models.KindMutualFund,
		models.KindCrypto, models.KindSGB:
		return fx.ToINR(inv.Quantity*inv.CurrentPrice, inv.Currency)

	case models.KindFixedDeposit:
		return fixedDepositValue(inv, now)

	case models.KindRecurringDeposit:
		return rdValue(inv.MonthlyDeposit, inv.InterestRate, float64(rdMonthsElapsed(inv, now)))

	case models.KindEPF, models.KindPPF, models.KindNPS, models.KindSSY:
		balance, _ := providentAccrue(inv, now)
		return balance

	case models.KindKVP, models.KindNSC:
		return certificateValue(inv, now)

	case models.KindSCSS, models.KindPostOfficeMIS:
		return simpleInterestValue(inv, now)

	case models.KindInsuranceEndowment, models.KindInsuranceMoneyback:
		return insuranceValue(inv, now)

	case models.KindInsuranceTerm:
		return inv.CoverageAmount

	case models.KindBond:
		if inv.MarketValue > 0 {
			return inv.MarketValue
		}
		return inv.FaceValue

	case models.KindRealEstate:
		if inv.MarketValue > 0 {
			return inv.MarketValue
		}
		return inv.Principal

	case models.KindCash:
		return inv.Principal

	default:
		return 0
	}
}

// Returns is current value minus invested amount; may be negative.
func Returns(inv models.Investment, fx Rates, now time.Time) float64 {
	return CurrentValue(inv, fx, now) - InvestedAmount(inv, fx, now)
}

// ReturnsPercentage is returns over invested amount, as a percentage.
// Zero-invested instruments report 0.
func ReturnsPercentage(inv models.Investment, fx Rates, now time.Time) float64 {
	invested := InvestedAmount(inv, fx, now)
	if invested == 0 {
		return 0
	}
	return Returns(inv, fx, now) / invested * 100
}

// compoundValue grows principal at the annual rate for t years with n
// capitalization periods per year. n = 0 means simple interest.
func compoundValue(principal, rate, n, t float64) float64 {
	if t <= 0 {
		return principal
	}
	if n == 0 {
		return principal + principal*rate*t/100
	}
	return principal * math.Pow(1+rate/(100*n), n*t)
}

// fixedDepositValue values an FD from its start date to min(now, maturity).
func fixedDepositValue(inv models.Investment, now time.Time) float64 {
	if inv.StartDate == nil {
		return inv.Principal
	}
	end := now
	if inv.MaturityDate != nil {
		end = minTime(end, *inv.MaturityDate)
	}
	t := YearsBetween(*inv.StartDate, end)
	return compoundValue(inv.Principal, inv.InterestRate, periodsPerYear(inv.Compounding), t)
}

// rdMonthsElapsed counts the whole deposit months elapsed by now, clamped
// to the tenure (or the explicit maturity date when present).
func rdMonthsElapsed(inv models.Investment, now time.Time) int {
	if inv.StartDate == nil {
		return 0
	}
	end := now
	if inv.MaturityDate != nil {
		end = minTime(end, *inv.MaturityDate)
	}
	months := WholeMonthsBetween(*inv.StartDate, end)
	if inv.TenureMonths > 0 && months > inv.TenureMonths {
		months = inv.TenureMonths
	}
	return months
}

// rdValue is the post-office recurring-deposit annuity:
// M = R·[(1+i)^q − 1] / [1 − (1+i)^(−1/3)], i = quarterly rate, q = elapsed
// quarters. A zero rate degenerates to the deposits themselves.
func rdValue(monthlyDeposit, annualRate, months float64) float64 {
	if months <= 0 {
		return 0
	}
	i := annualRate / 400
	if i == 0 {
		return monthlyDeposit * months
	}
	q := months / 3
	return monthlyDeposit * (math.Pow(1+i, q) - 1) / (1 - math.Pow(1+i, -1.0/3))
}

// providentBaseline is the date the stored running balance refers to.
func providentBaseline(inv models.Investment) *time.Time {
	if inv.LastUpdated != nil {
		return inv.LastUpdated
	}
	return inv.StartDate
}

// providentMonthsElapsed counts whole contribution months from the balance
// baseline to min(now, maturity).
func providentMonthsElapsed(inv models.Investment, now time.Time) int {
	base := providentBaseline(inv)
	if base == nil {
		return 0
	}
	end := now
	if inv.MaturityDate != nil {
		end = minTime(end, *inv.MaturityDate)
	}
	return WholeMonthsBetween(*base, end)
}

// providentAccrue simulates the fund month by month from the stored balance:
// each month adds the contribution, then accrues one month of interest on
// the running balance. Contributions change the base each period, so there
// is no closed form. Returns the final balance and the interest earned
// across the simulated months.
func providentAccrue(inv models.Investment, now time.Time) (balance, interest float64) {
	balance = inv.CurrentBalance
	months := providentMonthsElapsed(inv, now)
	monthlyRate := inv.InterestRate / 1200
	for m := 0; m < months; m++ {
		balance += inv.MonthlyContribution
		earned := balance * monthlyRate
		interest += earned
		balance += earned
	}
	return balance, interest
}

// certificateValue interpolates a KVP/NSC-style certificate linearly between
// principal at purchase and the known maturity amount, clamped at both ends.
func certificateValue(inv models.Investment, now time.Time) float64 {
	if inv.StartDate == nil || inv.MaturityDate == nil {
		return inv.Principal
	}
	start, maturity := *inv.StartDate, *inv.MaturityDate
	if !now.After(start) {
		return inv.Principal
	}
	if !now.Before(maturity) {
		return inv.MaturityAmount
	}
	total := DaysBetween(start, maturity)
	if total <= 0 {
		return inv.MaturityAmount
	}
	elapsed := DaysBetween(start, now)
	return inv.Principal + (inv.MaturityAmount-inv.Principal)*elapsed/total
}

// simpleInterestValue accrues flat simple interest from start to
// min(now, maturity). Used for payout schemes (SCSS, post-office MIS)
// whose interest never compounds.
func simpleInterestValue(inv models.Investment, now time.Time) float64 {
	if inv.StartDate == nil {
		return inv.Principal
	}
	end := now
	if inv.MaturityDate != nil {
		end = minTime(end, *inv.MaturityDate)
	}
	t := YearsBetween(*inv.StartDate, end)
	if t <= 0 {
		return inv.Principal
	}
	return inv.Principal + inv.Principal*inv.InterestRate*t/100
}

// insuranceValue accrues reversionary bonus on an endowment/moneyback
// policy: sum assured plus bonusRate per thousand of sum assured for each
// completed policy year, plus the final bonus once matured.
func insuranceValue(inv models.Investment, now time.Time) float64 {
	value := inv.SumAssured
	if inv.StartDate != nil {
		end := now
		if inv.MaturityDate != nil {
			end = minTime(end, *inv.MaturityDate)
		}
		years := WholeYearsBetween(*inv.StartDate, end)
		value += inv.BonusRate * (inv.SumAssured / 1000) * float64(years)
	}
	if inv.MaturityDate != nil && !now.Before(*inv.MaturityDate) {
		value += inv.FinalBonus
	}
	return value
}
