package portfolio

import (
	"errors"
	"testing"
)

func TestPositionsAt_BuyAccumulatesCostBasisWithFees(t *testing.T) {
	l := mustLedger(NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), USD(5)))

	positions, err := PositionsAt(l, "main", day("2025-01-10"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	p := positions["AAPL"]
	if !p.Quantity.Equal(Q(10)) {
		t.Errorf("quantity = %s, want 10", p.Quantity)
	}
	if !p.CostBasis.Equal(USD(1005)) {
		t.Errorf("cost basis = %s, want %s", p.CostBasis, USD(1005))
	}
	if !p.AvgCost().Equal(USD(100.5)) {
		t.Errorf("avg cost = %s, want %s", p.AvgCost(), USD(100.5))
	}
}

func TestPositionsAt_SellRealizesAgainstAverageCost(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "main", "AAPL", Q(4), USD(120), NO(0)),
	)

	positions, err := PositionsAt(l, "main", day("2025-02-10"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	p := positions["AAPL"]
	if !p.Quantity.Equal(Q(6)) {
		t.Errorf("quantity = %s, want 6", p.Quantity)
	}
	if !p.CostBasis.Equal(USD(600)) {
		t.Errorf("cost basis = %s, want %s", p.CostBasis, USD(600))
	}
	if !p.AvgCost().Equal(USD(100)) {
		t.Errorf("avg cost = %s, want %s (a sell must not move it)", p.AvgCost(), USD(100))
	}
	if !p.RealizedGain.Equal(USD(80)) {
		t.Errorf("realized gain on position = %s, want %s", p.RealizedGain, USD(80))
	}

	gains, err := RealizedGains(l, "main", NewRange(day("2025-01-01"), day("2025-12-31")))
	if err != nil {
		t.Fatalf("RealizedGains() error = %v", err)
	}
	if !gains["AAPL"].Equal(USD(80)) {
		t.Errorf("realized gain = %s, want %s", gains["AAPL"], USD(80))
	}
}

func TestPositionsAt_MultipleBuysAverage(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), NO(0)),
		NewBuy(day("2025-01-20"), "main", "AAPL", Q(10), USD(200), NO(0)),
	)
	positions, err := PositionsAt(l, "main", day("2025-01-31"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	if got := positions["AAPL"].AvgCost(); !got.Equal(USD(150)) {
		t.Errorf("avg cost = %s, want %s", got, USD(150))
	}
}

func TestPositionsAt_OversellFailsWithContext(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(5), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "main", "AAPL", Q(8), USD(120), NO(0)),
	)

	_, err := PositionsAt(l, "main", day("2025-03-01"))
	var ierr *InsufficientPositionError
	if !errors.As(err, &ierr) {
		t.Fatalf("PositionsAt() error = %v, want *InsufficientPositionError", err)
	}
	if ierr.Account != "main" || ierr.Symbol != "AAPL" || ierr.On != day("2025-02-10") {
		t.Errorf("error context = %+v", ierr)
	}
	if !ierr.Requested.Equal(Q(8)) || !ierr.Held.Equal(Q(5)) {
		t.Errorf("error quantities = requested %s held %s", ierr.Requested, ierr.Held)
	}
}

func TestPositionsAt_SellOtherAccountDoesNotOversell(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "ira", "AAPL", Q(5), USD(100), NO(0)),
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(1), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "ira", "AAPL", Q(5), USD(120), NO(0)),
	)
	if _, err := PositionsAt(l, "ira", day("2025-03-01")); err != nil {
		t.Fatalf("accounts must not share positions: %v", err)
	}
}

func TestPositionsAt_ZeroPositionOmittedAndBasisReset(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(5), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "main", "AAPL", Q(5), USD(120), NO(0)),
		NewBuy(day("2025-03-10"), "main", "AAPL", Q(2), USD(300), NO(0)),
	)

	positions, err := PositionsAt(l, "main", day("2025-02-28"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	if _, ok := positions["AAPL"]; ok {
		t.Error("a position sold to zero must be omitted")
	}

	positions, err = PositionsAt(l, "main", day("2025-03-31"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	if got := positions["AAPL"].AvgCost(); !got.Equal(USD(300)) {
		t.Errorf("avg cost after reopening = %s, want %s", got, USD(300))
	}
}

func TestPositionsOverTime_SnapshotsAtEachDate(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "main", "AAPL", Q(4), USD(120), NO(0)),
	)

	// Dates arrive unsorted; the replay sorts them itself.
	snapshots, err := PositionsOverTime(l, "main", []Date{
		day("2025-03-01"), day("2025-01-01"), day("2025-01-31"),
	})
	if err != nil {
		t.Fatalf("PositionsOverTime() error = %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snapshots))
	}
	if snapshots[0].On != day("2025-01-01") || len(snapshots[0].Positions) != 0 {
		t.Errorf("snapshot before first buy = %+v", snapshots[0])
	}
	if got := snapshots[1].Positions["AAPL"].Quantity; !got.Equal(Q(10)) {
		t.Errorf("quantity on 01-31 = %s, want 10", got)
	}
	if got := snapshots[2].Positions["AAPL"].Quantity; !got.Equal(Q(6)) {
		t.Errorf("quantity on 03-01 = %s, want 6", got)
	}
}

func TestPositionsAt_EmptyAccountAggregates(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(5), USD(100), NO(0)),
		NewBuy(day("2025-01-10"), "ira", "AAPL", Q(3), USD(100), NO(0)),
	)
	positions, err := PositionsAt(l, "", day("2025-01-31"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	if got := positions["AAPL"].Quantity; !got.Equal(Q(8)) {
		t.Errorf("aggregate quantity = %s, want 8", got)
	}
}

func TestRealizedGains_RangeBoundsAndFees(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), NO(0)),
		NewSell(day("2025-02-10"), "main", "AAPL", Q(2), USD(120), USD(1)), // gain 39
		NewSell(day("2025-06-10"), "main", "AAPL", Q(2), USD(150), NO(0)),  // gain 100, outside range
	)

	gains, err := RealizedGains(l, "main", NewRange(day("2025-02-01"), day("2025-02-28")))
	if err != nil {
		t.Fatalf("RealizedGains() error = %v", err)
	}
	if !gains["AAPL"].Equal(USD(39)) {
		t.Errorf("realized gain in february = %s, want %s", gains["AAPL"], USD(39))
	}

	total, err := TotalRealizedGain(l, "main", NewRange(day("2025-01-01"), day("2025-12-31")))
	if err != nil {
		t.Fatalf("TotalRealizedGain() error = %v", err)
	}
	if !total.Equal(USD(139)) {
		t.Errorf("total realized gain = %s, want %s", total, USD(139))
	}
}

func TestPositionsAt_Deterministic(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(10), USD(100), USD(2)),
		NewSell(day("2025-01-10"), "main", "AAPL", Q(3), USD(110), USD(1)),
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(5), USD(105), NO(0)),
	)
	first, err := PositionsAt(l, "main", day("2025-01-10"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	for range 10 {
		again, err := PositionsAt(l, "main", day("2025-01-10"))
		if err != nil {
			t.Fatalf("PositionsAt() error = %v", err)
		}
		p, q := first["AAPL"], again["AAPL"]
		if !p.Quantity.Equal(q.Quantity) || !p.CostBasis.Equal(q.CostBasis) {
			t.Fatalf("replay is not deterministic: %+v vs %+v", p, q)
		}
	}
}
