package valuation

import (
	"math"
	"testing"
	"time"

	"nivesh/internal/models"
)

func TestAggregate(t *testing.T) {
	t.Run("folds_engine_over_snapshot", func(t *testing.T) {
		now := date(2024, time.June, 1)
		invs := sampleInstruments()
		got := Aggregate(invs, noFX, now)

		var wantInvested, wantCurrent float64
		for _, inv := range invs {
			wantInvested += InvestedAmount(inv, noFX, now)
			wantCurrent += CurrentValue(inv, noFX, now)
		}
		inDelta(t, wantInvested, got.TotalInvested, 1e-6)
		inDelta(t, wantCurrent, got.TotalCurrent, 1e-6)
		inDelta(t, wantCurrent-wantInvested, got.TotalReturns, 1e-6)
		inDelta(t, (wantCurrent-wantInvested)/wantInvested*100, got.ReturnsPercentage, 1e-6)
	})

	t.Run("empty_snapshot_is_all_zero", func(t *testing.T) {
		got := Aggregate(nil, noFX, date(2024, time.June, 1))
		if got.TotalInvested != 0 || got.TotalCurrent != 0 || got.TotalReturns != 0 || got.ReturnsPercentage != 0 {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})
}

func TestAllocationByKind(t *testing.T) {
	now := date(2024, time.June, 1)

	t.Run("percentages_sum_to_100", func(t *testing.T) {
		allocs := AllocationByKind(sampleInstruments(), noFX, now)
		var sum float64
		for _, a := range allocs {
			sum += a.Percentage
		}
		inDelta(t, 100, sum, 1e-6)
	})

	t.Run("sorted_descending_by_value", func(t *testing.T) {
		allocs := AllocationByKind(sampleInstruments(), noFX, now)
		for i := 1; i < len(allocs); i++ {
			if allocs[i].Value > allocs[i-1].Value {
				t.Errorf("allocation %d (%v) larger than %d (%v)", i, allocs[i].Value, i-1, allocs[i-1].Value)
			}
		}
	})

	t.Run("groups_same_kind", func(t *testing.T) {
		invs := []models.Investment{
			{Kind: models.KindGold, Quantity: 10, PurchasePrice: 5000, CurrentPrice: 6000},
			{Kind: models.KindGold, Quantity: 5, PurchasePrice: 5200, CurrentPrice: 6000},
			{Kind: models.KindCash, Principal: 30000},
		}
		allocs := AllocationByKind(invs, noFX, now)
		if len(allocs) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(allocs))
		}
		if allocs[0].Kind != models.KindGold || allocs[0].Count != 2 {
			t.Errorf("expected gold group of 2 first, got %+v", allocs[0])
		}
		inDelta(t, 90000, allocs[0].Value, 1e-9)
		inDelta(t, 75, allocs[0].Percentage, 1e-9)
		inDelta(t, 25, allocs[1].Percentage, 1e-9)
	})

	t.Run("empty_snapshot_is_empty", func(t *testing.T) {
		if allocs := AllocationByKind(nil, noFX, now); len(allocs) != 0 {
			t.Errorf("expected no allocations, got %+v", allocs)
		}
	})

	t.Run("worthless_portfolio_has_zero_percentages", func(t *testing.T) {
		invs := []models.Investment{{Kind: models.KindStock, Quantity: 10, PurchasePrice: 100}}
		allocs := AllocationByKind(invs, noFX, now)
		if len(allocs) != 1 {
			t.Fatalf("expected 1 group, got %d", len(allocs))
		}
		if allocs[0].Percentage != 0 || math.IsNaN(allocs[0].Percentage) {
			t.Errorf("expected 0 percentage on zero total, got %v", allocs[0].Percentage)
		}
	})
}
