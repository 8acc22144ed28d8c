package valuation

import (
	"time"

	"nivesh/internal/models"
)

// WindowedInterest is the interest earned inside one calendar window,
// totalled and broken down by instrument kind.
type WindowedInterest struct {
	Total  float64                           `json:"total"`
	ByKind map[models.InvestmentKind]float64 `json:"by_kind"`
}

// MonthInterest is one month's slice of a yearly attribution. Months after
// now are tagged Future and contribute nothing.
type MonthInterest struct {
	Month    time.Month `json:"month"`
	Interest float64    `json:"interest"`
	Future   bool       `json:"future"`
}

// YearlyInterest computes the interest earned by interest-bearing
// instruments strictly within the given calendar year. The window is
// clipped to now so nothing accrues ahead of the clock.
func YearlyInterest(invs []models.Investment, year int, now time.Time) WindowedInterest {
	result := WindowedInterest{ByKind: make(map[models.InvestmentKind]float64)}
	winStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	winEnd := minTime(winStart.AddDate(1, 0, 0), now)
	if !winEnd.After(winStart) {
		return result
	}
	for _, inv := range invs {
		interest, ok := interestInWindow(inv, winStart, winEnd)
		if !ok {
			continue
		}
		result.Total += interest
		result.ByKind[inv.Kind] += interest
	}
	return result
}

// MonthlyInterest computes per-month interest for the given calendar year,
// twelve entries in order.
func MonthlyInterest(invs []models.Investment, year int, now time.Time) []MonthInterest {
	out := make([]MonthInterest, 0, 12)
	for m := time.January; m <= time.December; m++ {
		monthStart := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		entry := MonthInterest{Month: m}
		if monthStart.After(now) {
			entry.Future = true
			out = append(out, entry)
			continue
		}
		monthEnd := minTime(monthStart.AddDate(0, 1, 0), now)
		for _, inv := range invs {
			interest, ok := interestInWindow(inv, monthStart, monthEnd)
			if !ok {
				continue
			}
			entry.Interest += interest
		}
		out = append(out, entry)
	}
	return out
}

// interestInWindow computes the interest a single instrument earned within
// [winStart, winEnd). ok is false when the instrument does not participate:
// not an interest-bearing kind, missing the dates its formula needs, or no
// overlap with the window.
func interestInWindow(inv models.Investment, winStart, winEnd time.Time) (float64, bool) {
	if !InterestBearing(inv.Kind) {
		return 0, false
	}

	switch inv.Kind {
	case models.KindFixedDeposit:
		from, to, ok := overlap(inv.StartDate, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		// Balance delta with the compounding exponent measured in years
		// from the instrument's start to each window boundary. For
		// sub-yearly frequencies this assumes period boundaries align
		// with window boundaries; kept as the documented approximation.
		n := periodsPerYear(inv.Compounding)
		t1 := YearsBetween(*inv.StartDate, from)
		t2 := YearsBetween(*inv.StartDate, to)
		return compoundValue(inv.Principal, inv.InterestRate, n, t2) -
			compoundValue(inv.Principal, inv.InterestRate, n, t1), true

	case models.KindRecurringDeposit:
		if inv.StartDate == nil {
			return 0, false
		}
		maturity := inv.MaturityDate
		if maturity == nil && inv.TenureMonths > 0 {
			m := inv.StartDate.AddDate(0, inv.TenureMonths, 0)
			maturity = &m
		}
		from, to, ok := overlap(inv.StartDate, maturity, winStart, winEnd)
		if !ok {
			return 0, false
		}
		return rdInterestToDate(inv, to) - rdInterestToDate(inv, from), true

	case models.KindEPF, models.KindPPF, models.KindNPS, models.KindSSY:
		base := providentBaseline(inv)
		start := inv.StartDate
		if start == nil {
			start = base
		}
		if start == nil || base == nil {
			return 0, false
		}
		from, to, ok := overlap(start, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		m1 := WholeMonthsBetween(*base, from)
		m2 := WholeMonthsBetween(*base, to)
		return providentInterestRange(inv, m1, m2), true

	case models.KindKVP, models.KindNSC:
		if inv.StartDate == nil || inv.MaturityDate == nil {
			return 0, false
		}
		from, to, ok := overlap(inv.StartDate, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		term := DaysBetween(*inv.StartDate, *inv.MaturityDate)
		if term <= 0 {
			return 0, false
		}
		spread := inv.MaturityAmount - inv.Principal
		return spread * DaysBetween(from, to) / term, true

	case models.KindSCSS, models.KindPostOfficeMIS:
		from, to, ok := overlap(inv.StartDate, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		return inv.Principal * inv.InterestRate / 100 * YearsBetween(from, to), true

	case models.KindBond:
		from, to, ok := overlap(inv.StartDate, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		return inv.FaceValue * inv.InterestRate / 100 * YearsBetween(from, to), true

	case models.KindSGB:
		from, to, ok := overlap(inv.StartDate, inv.MaturityDate, winStart, winEnd)
		if !ok {
			return 0, false
		}
		issuePrice := inv.Quantity * inv.PurchasePrice
		return issuePrice * sgbCouponRate / 100 * YearsBetween(from, to), true

	default:
		return 0, false
	}
}

// overlap intersects an instrument's active window [start, maturity] with
// [winStart, winEnd). A nil start excludes the instrument; a nil maturity
// leaves the window open-ended. ok is false when there is no intersection.
func overlap(start, maturity *time.Time, winStart, winEnd time.Time) (from, to time.Time, ok bool) {
	if start == nil {
		return time.Time{}, time.Time{}, false
	}
	from = maxTime(*start, winStart)
	to = winEnd
	if maturity != nil {
		to = minTime(to, *maturity)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// rdInterestToDate is the interest component of an RD's value at the given
// instant: annuity value minus deposits, with fractional elapsed months so
// window deltas resolve below month granularity.
func rdInterestToDate(inv models.Investment, at time.Time) float64 {
	months := MonthsBetween(*inv.StartDate, at)
	if months <= 0 {
		return 0
	}
	if inv.TenureMonths > 0 && months > float64(inv.TenureMonths) {
		months = float64(inv.TenureMonths)
	}
	return rdValue(inv.MonthlyDeposit, inv.InterestRate, months) - inv.MonthlyDeposit*months
}

// providentInterestRange accrues the fund month by month from its stored
// balance and sums the interest of months (m1, m2] only.
func providentInterestRange(inv models.Investment, m1, m2 int) float64 {
	if m2 <= m1 {
		return 0
	}
	balance := inv.CurrentBalance
	monthlyRate := inv.InterestRate / 1200
	var interest float64
	for m := 0; m < m2; m++ {
		balance += inv.MonthlyContribution
		earned := balance * monthlyRate
		if m >= m1 {
			interest += earned
		}
		balance += earned
	}
	return interest
}
