package valuation

import "time"

// Every formula in this package measures elapsed time the same way:
// calendar-agnostic average month and year lengths. Per-variant ad hoc
// date math is deliberately avoided.
const (
	daysPerMonth = 30.44
	daysPerYear  = 365.25
	hoursPerDay  = 24
)

// DaysBetween returns the fractional number of days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / hoursPerDay
}

// MonthsBetween returns the fractional number of average months from a to b.
func MonthsBetween(a, b time.Time) float64 {
	return DaysBetween(a, b) / daysPerMonth
}

// YearsBetween returns the fractional number of average years from a to b.
func YearsBetween(a, b time.Time) float64 {
	return DaysBetween(a, b) / daysPerYear
}

// WholeMonthsBetween returns the number of fully elapsed average months
// from a to b, never negative.
func WholeMonthsBetween(a, b time.Time) int {
	m := MonthsBetween(a, b)
	if m < 0 {
		return 0
	}
	return int(m)
}

// WholeYearsBetween returns the number of fully elapsed average years
// from a to b, never negative.
func WholeYearsBetween(a, b time.Time) int {
	y := YearsBetween(a, b)
	if y < 0 {
		return 0
	}
	return int(y)
}

// minTime returns the earlier of a and b.
func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// maxTime returns the later of a and b.
func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
