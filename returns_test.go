package portfolio

import (
	"errors"
	"math"
	"testing"
)

func TestCAGR_TwoYearDouble(t *testing.T) {
	// 100 growing to 121 over two years is 10% a year.
	r := Range{From: day("2023-01-01"), To: day("2025-01-01")}
	got, err := CAGR(USD(100), USD(121), r)
	if err != nil {
		t.Fatalf("CAGR() error = %v", err)
	}
	if !approx(got.Float64(), 0.10, 1e-3) {
		t.Errorf("CAGR = %s, want about 10%%", got)
	}
}

func TestCAGR_InsufficientData(t *testing.T) {
	r := Range{From: day("2023-01-01"), To: day("2025-01-01")}

	_, err := CAGR(USD(0), USD(121), r)
	var ierr *InsufficientDataError
	if !errors.As(err, &ierr) {
		t.Errorf("zero start: error = %v, want *InsufficientDataError", err)
	}

	sameDay := Range{From: day("2023-01-01"), To: day("2023-01-01")}
	if _, err := CAGR(USD(100), USD(121), sameDay); !errors.As(err, &ierr) {
		t.Errorf("empty range: error = %v, want *InsufficientDataError", err)
	}
}

func TestCAGR_NegativeEndIsOutOfDomain(t *testing.T) {
	r := Range{From: day("2023-01-01"), To: day("2025-01-01")}
	_, err := CAGR(USD(100), USD(-50), r)
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Errorf("error = %v, want *DomainError", err)
	}
}

func TestIRR_SingleFlowPair(t *testing.T) {
	// Invest 1000, get 1100 back a year later: 10%.
	flows := []Flow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2025-01-01"), Amount: 1100},
	}
	got, err := IRR(flows)
	if err != nil {
		t.Fatalf("IRR() error = %v", err)
	}
	if !approx(got.Float64(), 0.10, 1e-3) {
		t.Errorf("IRR = %s, want about 10%%", got)
	}
}

func TestIRR_MidPeriodContribution(t *testing.T) {
	flows := []Flow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2024-07-01"), Amount: -500},
		{On: day("2025-01-01"), Amount: 1650},
	}
	got, err := IRR(flows)
	if err != nil {
		t.Fatalf("IRR() error = %v", err)
	}
	// The rate must discount the schedule to zero.
	var npv float64
	first := day("2024-01-01")
	for _, f := range flows {
		npv += f.Amount / math.Pow(1+got.Float64(), first.YearsUntil(f.On))
	}
	if !approx(npv, 0, 1e-3) {
		t.Errorf("NPV at IRR = %g, want 0 (rate %s)", npv, got)
	}
}

func TestIRR_UnorderedFlowsSortedFirst(t *testing.T) {
	flows := []Flow{
		{On: day("2025-01-01"), Amount: 1100},
		{On: day("2024-01-01"), Amount: -1000},
	}
	got, err := IRR(flows)
	if err != nil {
		t.Fatalf("IRR() error = %v", err)
	}
	if !approx(got.Float64(), 0.10, 1e-3) {
		t.Errorf("IRR = %s, want about 10%%", got)
	}
}

func TestIRR_InsufficientData(t *testing.T) {
	var ierr *InsufficientDataError

	_, err := IRR([]Flow{{On: day("2024-01-01"), Amount: -1000}})
	if !errors.As(err, &ierr) {
		t.Errorf("single flow: error = %v, want *InsufficientDataError", err)
	}

	sameSign := []Flow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2025-01-01"), Amount: -100},
	}
	if _, err := IRR(sameSign); !errors.As(err, &ierr) {
		t.Errorf("same sign: error = %v, want *InsufficientDataError", err)
	}
}

func TestIRR_NoRootFailsWithConvergenceError(t *testing.T) {
	// The signs change but the discounted schedule stays positive over the
	// whole admissible rate interval, so no rate makes its NPV zero.
	flows := []Flow{
		{On: day("2024-01-01"), Amount: 100},
		{On: day("2024-07-01"), Amount: -50},
		{On: day("2025-01-01"), Amount: 100},
	}
	_, err := IRR(flows)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Errorf("error = %v, want *ConvergenceError", err)
	}
}

func TestTWRR_ChainsSubPeriods(t *testing.T) {
	// Up 10%, then a 1000 deposit, then down 5%: (1.10)(0.95)-1 = 4.5%,
	// regardless of the deposit size.
	values := []Flow{
		{On: day("2025-01-01"), Amount: 1000},
		{On: day("2025-02-01"), Amount: 2100}, // 1100 growth + 1000 deposit
		{On: day("2025-03-01"), Amount: 1995},
	}
	flows := []Flow{{On: day("2025-02-01"), Amount: 1000}}

	got, err := TWRR(values, flows)
	if err != nil {
		t.Fatalf("TWRR() error = %v", err)
	}
	if !approx(got.Float64(), 0.045, 1e-9) {
		t.Errorf("TWRR = %s, want 4.50%%", got)
	}
}

func TestTWRR_SkipsZeroStartSubPeriods(t *testing.T) {
	values := []Flow{
		{On: day("2025-01-01"), Amount: 0},
		{On: day("2025-01-02"), Amount: 1000}, // funded by the opening deposit
		{On: day("2025-02-01"), Amount: 1100},
	}
	flows := []Flow{{On: day("2025-01-02"), Amount: 1000}}

	got, err := TWRR(values, flows)
	if err != nil {
		t.Fatalf("TWRR() error = %v", err)
	}
	if !approx(got.Float64(), 0.10, 1e-9) {
		t.Errorf("TWRR = %s, want 10%%", got)
	}
}

func TestTWRR_InsufficientData(t *testing.T) {
	_, err := TWRR([]Flow{{On: day("2025-01-01"), Amount: 1000}}, nil)
	var ierr *InsufficientDataError
	if !errors.As(err, &ierr) {
		t.Errorf("error = %v, want *InsufficientDataError", err)
	}
}

func TestDividendYield(t *testing.T) {
	got, err := DividendYield(USD(50), USD(1000))
	if err != nil {
		t.Fatalf("DividendYield() error = %v", err)
	}
	if !approx(got.Float64(), 0.05, 1e-9) {
		t.Errorf("DividendYield = %s, want 5%%", got)
	}

	var ierr *InsufficientDataError
	if _, err := DividendYield(USD(50), USD(0)); !errors.As(err, &ierr) {
		t.Errorf("zero invested value: error = %v, want *InsufficientDataError", err)
	}
}
