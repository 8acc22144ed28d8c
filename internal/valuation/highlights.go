package valuation

import (
	"sort"
	"time"

	"nivesh/internal/models"
)

// Performer is one ranked instrument.
type Performer struct {
	ID                uint                  `json:"id"`
	Name              string                `json:"name"`
	Kind              models.InvestmentKind `json:"kind"`
	Returns           float64               `json:"returns"`
	ReturnsPercentage float64               `json:"returns_percentage"`
}

// Highlights holds the best and worst holdings by returns percentage.
type Highlights struct {
	TopPerformers    []Performer `json:"top_performers"`
	BottomPerformers []Performer `json:"bottom_performers"`
}

// PerformanceHighlights ranks instruments by returns percentage. Instruments
// with nothing invested are ineligible. The top three are always reported;
// the bottom three (worst first) only when at least four instruments are
// eligible, so the two lists never overlap.
func PerformanceHighlights(invs []models.Investment, fx Rates, now time.Time) Highlights {
	eligible := make([]Performer, 0, len(invs))
	for _, inv := range invs {
		if InvestedAmount(inv, fx, now) == 0 {
			continue
		}
		eligible = append(eligible, Performer{
			ID:                inv.ID,
			Name:              inv.Name,
			Kind:              inv.Kind,
			Returns:           Returns(inv, fx, now),
			ReturnsPercentage: ReturnsPercentage(inv, fx, now),
		})
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ReturnsPercentage > eligible[j].ReturnsPercentage
	})

	h := Highlights{
		TopPerformers:    []Performer{},
		BottomPerformers: []Performer{},
	}
	top := len(eligible)
	if top > 3 {
		top = 3
	}
	h.TopPerformers = append(h.TopPerformers, eligible[:top]...)

	if len(eligible) >= 4 {
		bottom := len(eligible) - 3
		if bottom < top {
			bottom = top
		}
		// Worst first.
		for i := len(eligible) - 1; i >= bottom; i-- {
			h.BottomPerformers = append(h.BottomPerformers, eligible[i])
		}
	}
	return h
}
