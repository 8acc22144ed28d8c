package valuation

import (
	"sort"
	"time"

	"nivesh/internal/models"
)

// PortfolioSummary aggregates a whole snapshot.
type PortfolioSummary struct {
	TotalInvested     float64 `json:"total_invested"`
	TotalCurrent      float64 `json:"total_current"`
	TotalReturns      float64 `json:"total_returns"`
	ReturnsPercentage float64 `json:"returns_percentage"`
}

// Aggregate folds the valuation engine over the snapshot.
func Aggregate(invs []models.Investment, fx Rates, now time.Time) PortfolioSummary {
	var s PortfolioSummary
	for _, inv := range invs {
		s.TotalInvested += InvestedAmount(inv, fx, now)
		s.TotalCurrent += CurrentValue(inv, fx, now)
	}
	s.TotalReturns = s.TotalCurrent - s.TotalInvested
	if s.TotalInvested > 0 {
		s.ReturnsPercentage = s.TotalReturns / s.TotalInvested * 100
	}
	return s
}

// Allocation is one kind's share of the portfolio's current value.
type Allocation struct {
	Kind       models.InvestmentKind `json:"kind"`
	Value      float64               `json:"value"`
	Percentage float64               `json:"percentage"`
	Count      int                   `json:"count"`
}

// AllocationByKind groups the snapshot by kind and computes each group's
// current value and share of the total, sorted descending by value.
// Percentages sum to 100 whenever the total is positive; an empty snapshot
// returns an empty slice.
func AllocationByKind(invs []models.Investment, fx Rates, now time.Time) []Allocation {
	groups := make(map[models.InvestmentKind]*Allocation)
	var total float64
	for _, inv := range invs {
		value := CurrentValue(inv, fx, now)
		total += value
		g, ok := groups[inv.Kind]
		if !ok {
			g = &Allocation{Kind: inv.Kind}
			groups[inv.Kind] = g
		}
		g.Value += value
		g.Count++
	}

	out := make([]Allocation, 0, len(groups))
	for _, g := range groups {
		if total > 0 {
			g.Percentage = g.Value / total * 100
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
