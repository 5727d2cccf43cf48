package portfolio

import (
	"fmt"
	"math"
	"sort"
)

// Flow is a dated amount in a cash flow schedule, in major currency units.
// The sign convention belongs to the caller; the metrics below document the
// one they expect.
type Flow struct {
	On     Date
	Amount float64
}

// CAGR computes the compound annual growth rate between two values over a
// date range, using mean calendar years of 365.25 days.
func CAGR(start, end Money, over Range) (Percent, error) {
	years := over.From.YearsUntil(over.To)
	if years < 1.0/365.25 {
		return 0, &InsufficientDataError{Metric: "CAGR", Reason: "range is shorter than a day"}
	}
	s, e := start.Float64(), end.Float64()
	if s <= 0 {
		return 0, &InsufficientDataError{Metric: "CAGR", Reason: "starting value must be positive"}
	}
	if e < 0 {
		return 0, &DomainError{Metric: "CAGR", Reason: "negative ending value has no real growth rate"}
	}
	return Percent(math.Pow(e/s, 1/years) - 1), nil
}

// irr solver bounds and budget.
const (
	irrMin        = -0.9999
	irrMax        = 10.0
	irrIterations = 100
	irrTolerance  = 1e-7
)

// IRR computes the internal rate of return of a cash flow schedule, the
// annual rate at which its net present value is zero.
//
// Flows follow the investor convention: money paid in (deposits, the
// starting value) is negative, money received (withdrawals, dividends, the
// ending value) is positive. Discounting uses calendar year fractions from
// the first flow.
func IRR(flows []Flow) (Percent, error) {
	if len(flows) < 2 {
		return 0, &InsufficientDataError{Metric: "IRR", Reason: "need at least two cash flows"}
	}
	sorted := make([]Flow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].On.Before(sorted[j].On) })

	var pos, neg bool
	for _, f := range sorted {
		pos = pos || f.Amount > 0
		neg = neg || f.Amount < 0
	}
	if !pos || !neg {
		return 0, &InsufficientDataError{Metric: "IRR", Reason: "cash flows never change sign"}
	}
	if sorted[0].On == sorted[len(sorted)-1].On {
		return 0, &InsufficientDataError{Metric: "IRR", Reason: "all cash flows fall on the same day"}
	}

	first := sorted[0].On
	npv := func(rate float64) float64 {
		var v float64
		for _, f := range sorted {
			v += f.Amount / math.Pow(1+rate, first.YearsUntil(f.On))
		}
		return v
	}

	// Scan the admissible rate interval for a sign change, then close in
	// with bisection and polish with Newton steps.
	lo, hi, found := bracket(npv, irrMin, irrMax)
	if !found {
		return 0, &ConvergenceError{Metric: "IRR", Iterations: irrIterations}
	}
	rate := bisect(npv, lo, hi, irrIterations)
	rate = newton(npv, rate)
	if math.Abs(npv(rate)) > irrTolerance*scale(sorted) {
		return 0, &ConvergenceError{Metric: "IRR", Iterations: irrIterations}
	}
	return Percent(rate), nil
}

// scale returns the magnitude of the largest flow, used to make the
// convergence check relative to the size of the schedule.
func scale(flows []Flow) float64 {
	s := 1.0
	for _, f := range flows {
		if a := math.Abs(f.Amount); a > s {
			s = a
		}
	}
	return s
}

// bracket finds a subinterval of [lo, hi] across which f changes sign.
func bracket(f func(float64) float64, lo, hi float64) (a, b float64, found bool) {
	const steps = 256
	width := (hi - lo) / steps
	prev := f(lo)
	for i := 1; i <= steps; i++ {
		x := lo + float64(i)*width
		cur := f(x)
		if prev == 0 {
			return x - width, x - width, true
		}
		if prev*cur <= 0 {
			return x - width, x, true
		}
		prev = cur
	}
	return 0, 0, false
}

// bisect halves [lo, hi] down to a root of f.
func bisect(f func(float64) float64, lo, hi float64, iterations int) float64 {
	flo := f(lo)
	for range iterations {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 {
			return mid
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return (lo + hi) / 2
}

// newton polishes a root estimate with a few damped Newton steps, using a
// numerical derivative. It keeps the estimate above the -100% floor.
func newton(f func(float64) float64, x float64) float64 {
	const h = 1e-6
	for range 8 {
		fx := f(x)
		d := (f(x+h) - f(x-h)) / (2 * h)
		if d == 0 {
			return x
		}
		next := x - fx/d
		if next <= irrMin || next >= irrMax || math.IsNaN(next) {
			return x
		}
		if math.Abs(next-x) < 1e-12 {
			return next
		}
		x = next
	}
	return x
}

// TWRR computes the time weighted rate of return of an account value
// series, stripping out the effect of external cash flows.
//
// values is the chronological account value series; it should be sampled
// at least at every external flow date. flows are signed from the
// account's perspective, deposits positive and withdrawals negative. The
// series is cut into sub periods between consecutive values, each flow is
// charged to the sub period it falls in, and the sub period returns are
// chained. Sub periods starting from a zero value carry no return
// information and are skipped.
func TWRR(values []Flow, flows []Flow) (Percent, error) {
	if len(values) < 2 {
		return 0, &InsufficientDataError{Metric: "TWRR", Reason: "need at least two valuations"}
	}
	growth := 1.0
	for i := 1; i < len(values); i++ {
		start, end := values[i-1], values[i]
		var net float64
		for _, f := range flows {
			if f.On.After(start.On) && !f.On.After(end.On) {
				net += f.Amount
			}
		}
		if start.Amount == 0 {
			continue
		}
		growth *= (end.Amount - net) / start.Amount
	}
	return Percent(growth - 1), nil
}

// DividendYield is the dividend income of a window over the average
// invested value across it, as a simple rate.
func DividendYield(income, avgValue Money) (Percent, error) {
	if !avgValue.IsPositive() {
		return 0, &InsufficientDataError{Metric: "dividend yield",
			Reason: fmt.Sprintf("average invested value %s is not positive", avgValue)}
	}
	return Percent(income.Float64() / avgValue.Float64()), nil
}
