package portfolio

import "math"

// PeriodicReturns converts a value series into simple period over period
// returns. Periods starting from zero are skipped, since their return is
// undefined.
func PeriodicReturns(values []float64) []float64 {
	returns := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, values[i]/values[i-1]-1)
	}
	return returns
}

// Volatility is the annualized sample standard deviation of periodic
// returns, scaled by the square root of the sampling frequency.
func Volatility(returns []float64, sampledAt Period) (Percent, error) {
	if len(returns) < 2 {
		return 0, &InsufficientDataError{Metric: "volatility", Reason: "need at least two returns"}
	}
	return Percent(stddev(returns) * math.Sqrt(sampledAt.PerYear())), nil
}

// MaxDrawdown is the largest peak to trough decline of a value series,
// returned as a negative rate (or zero for a series that never declines).
func MaxDrawdown(values []float64) (Percent, error) {
	if len(values) < 2 {
		return 0, &InsufficientDataError{Metric: "max drawdown", Reason: "need at least two values"}
	}
	var worst float64
	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
			continue
		}
		if peak > 0 {
			if dd := v/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return Percent(worst), nil
}

// SharpeRatio is the annualized mean excess return over the risk free rate,
// divided by the annualized volatility. It is a dimensionless ratio, not a
// rate.
func SharpeRatio(returns []float64, riskFree float64, sampledAt Period) (float64, error) {
	vol, err := Volatility(returns, sampledAt)
	if err != nil {
		return 0, err
	}
	if vol == 0 {
		return 0, &DomainError{Metric: "sharpe ratio", Reason: "volatility is zero"}
	}
	perYear := sampledAt.PerYear()
	excess := mean(returns)*perYear - riskFree
	return excess / vol.Float64(), nil
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation (n-1 denominator).
func stddev(xs []float64) float64 {
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
