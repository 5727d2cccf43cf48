package renderer

import (
	"errors"

	"github.com/ngaillard/portfolio"
)

// Review is the data of a performance review over a date range. Metrics
// that cannot be computed from the available history are marked absent and
// rendered as n/a instead of failing the whole report.
type Review struct {
	Account string
	Range   portfolio.Range

	StartValue portfolio.Money
	EndValue   portfolio.Money

	NetCashFlow    portfolio.Money
	DividendIncome portfolio.Money
	RealizedGain   portfolio.Money
	UnrealizedGain portfolio.Money

	CAGR          Metric
	IRR           Metric
	TWRR          Metric
	DividendYield Metric
	Volatility    Metric
	MaxDrawdown   Metric
	SharpeRatio   Metric
}

// Metric is a computed rate with its availability. Reason carries the
// explanation when the metric is absent.
type Metric struct {
	Value  float64
	OK     bool
	Reason string
}

// Percent formats the metric value as a rate.
func (m Metric) Percent() portfolio.Percent { return portfolio.Percent(m.Value) }

// NewReview builds a performance review of the account over the range,
// sampling risk statistics at the given period and comparing excess return
// against the risk free rate.
func NewReview(e *portfolio.Engine, account string, r portfolio.Range, step portfolio.Period, riskFree float64) (*Review, error) {
	start, err := e.ValueAt(account, r.From)
	if err != nil {
		return nil, err
	}
	end, err := e.ValueAt(account, r.To)
	if err != nil {
		return nil, err
	}
	realized, err := portfolio.TotalRealizedGain(e.Ledger(), account, r)
	if err != nil {
		return nil, err
	}

	rv := &Review{
		Account:        account,
		Range:          r,
		StartValue:     start.TotalValue,
		EndValue:       end.TotalValue,
		NetCashFlow:    portfolio.NetCashFlow(e.Ledger(), account, r),
		DividendIncome: e.DividendIncome(account, r),
		RealizedGain:   realized,
		UnrealizedGain: end.UnrealizedGain,
	}

	rv.CAGR, err = metric(func() (float64, error) {
		p, err := e.CAGR(account, r)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.IRR, err = metric(func() (float64, error) {
		p, err := e.IRR(account, r)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.TWRR, err = metric(func() (float64, error) {
		p, err := e.TWRR(account, r)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.DividendYield, err = metric(func() (float64, error) {
		p, err := e.DividendYield(account, r)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.Volatility, err = metric(func() (float64, error) {
		p, err := e.Volatility(account, r, step)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.MaxDrawdown, err = metric(func() (float64, error) {
		p, err := e.MaxDrawdown(account, r, step)
		return p.Float64(), err
	})
	if err != nil {
		return nil, err
	}
	rv.SharpeRatio, err = metric(func() (float64, error) {
		return e.SharpeRatio(account, r, step, riskFree)
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// metric runs one metric computation, absorbing the expected per metric
// conditions and passing everything else through.
func metric(compute func() (float64, error)) (Metric, error) {
	v, err := compute()
	if err == nil {
		return Metric{Value: v, OK: true}, nil
	}
	var insufficient *portfolio.InsufficientDataError
	var domain *portfolio.DomainError
	var convergence *portfolio.ConvergenceError
	if errors.As(err, &insufficient) || errors.As(err, &domain) || errors.As(err, &convergence) {
		return Metric{Reason: err.Error()}, nil
	}
	return Metric{}, err
}
