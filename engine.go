package portfolio

import (
	"sync"
)

// Engine ties the ledger, the price source and the metrics together behind
// a valuation cache, for callers that issue many queries against the same
// ledger. All methods are safe for concurrent use.
//
// The cache is keyed by account and date and holds fully computed valuation
// points. Any change to the ledger goes through the engine, which drops the
// cache; a ledger mutated behind the engine's back yields stale results.
type Engine struct {
	mu        sync.RWMutex
	ledger    *Ledger
	prices    PriceLookup
	valuation *Valuation
	cache     map[posKey]ValuationPoint
}

type posKey struct {
	account string
	on      Date
}

// NewEngine returns an engine over the ledger and price source.
func NewEngine(l *Ledger, prices PriceLookup) *Engine {
	return &Engine{
		ledger:    l,
		prices:    prices,
		valuation: NewValuation(l, prices),
		cache:     make(map[posKey]ValuationPoint),
	}
}

// Ledger returns the engine's ledger. Mutate it only through Append.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// PriceAsOf resolves a price through the engine's price source.
func (e *Engine) PriceAsOf(symbol string, on Date) (Money, bool, error) {
	return e.prices.PriceAsOf(symbol, on)
}

// Append records transactions in the ledger and invalidates every cached
// valuation, since a new transaction can change any date's replay.
func (e *Engine) Append(txs ...Transaction) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.Append(txs...); err != nil {
		return err
	}
	e.cache = make(map[posKey]ValuationPoint)
	return nil
}

// Invalidate drops every cached valuation. Call it after the price source
// learns new prices.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[posKey]ValuationPoint)
}

// ValueAt returns the account's valuation point for the given day, cached.
// The replay runs under the read lock so Append cannot reorder the ledger
// mid-replay.
func (e *Engine) ValueAt(account string, on Date) (ValuationPoint, error) {
	key := posKey{account: account, on: on}
	e.mu.RLock()
	point, ok := e.cache[key]
	if ok {
		e.mu.RUnlock()
		return point, nil
	}
	point, err := e.valuation.ValueAt(account, on)
	e.mu.RUnlock()
	if err != nil {
		return ValuationPoint{}, err
	}
	e.mu.Lock()
	e.cache[key] = point
	e.mu.Unlock()
	return point, nil
}

// ValueOverTime returns the account's valuation series over the range,
// sampled at the given period. Computed points feed the cache.
func (e *Engine) ValueOverTime(account string, r Range, step Period) ([]ValuationPoint, error) {
	e.mu.RLock()
	points, err := e.valuation.ValueOverTime(account, r, step)
	e.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	for _, p := range points {
		e.cache[posKey{account: account, on: p.On}] = p
	}
	e.mu.Unlock()
	return points, nil
}

// Positions returns the account's open positions at the end of the day.
func (e *Engine) Positions(account string, on Date) (map[string]Position, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return PositionsAt(e.ledger, account, on)
}

// AccountValue is the account's securities value plus its cash balance.
func (e *Engine) AccountValue(account string, on Date) (Money, error) {
	point, err := e.ValueAt(account, on)
	if err != nil {
		return Money{}, err
	}
	e.mu.RLock()
	cash := e.ledger.CashBalance(account, on)
	e.mu.RUnlock()
	return point.TotalValue.Add(cash), nil
}

// CAGR is the compound annual growth rate of the account's securities value
// over the range.
func (e *Engine) CAGR(account string, r Range) (Percent, error) {
	start, err := e.ValueAt(account, r.From)
	if err != nil {
		return 0, err
	}
	end, err := e.ValueAt(account, r.To)
	if err != nil {
		return 0, err
	}
	return CAGR(start.TotalValue, end.TotalValue, r)
}

// IRR is the money weighted return of the account over the range. The
// schedule opens with the securities value at the range start as money
// invested, charges deposits as money in and withdrawals and dividends as
// money out, and closes with the securities value at the range end.
func (e *Engine) IRR(account string, r Range) (Percent, error) {
	start, err := e.ValueAt(account, r.From)
	if err != nil {
		return 0, err
	}
	end, err := e.ValueAt(account, r.To)
	if err != nil {
		return 0, err
	}
	flows := []Flow{{On: r.From, Amount: -start.TotalValue.Float64()}}
	e.mu.RLock()
	for cf := range CashFlows(e.ledger, account, Range{From: r.From.Add(1), To: r.To}) {
		amount := cf.Amount.Float64()
		if cf.Type == TxDeposit || cf.Type == TxWithdraw {
			// Investor convention: money put in is negative.
			amount = -amount
		}
		flows = append(flows, Flow{On: cf.On, Amount: amount})
	}
	e.mu.RUnlock()
	flows = append(flows, Flow{On: r.To, Amount: end.TotalValue.Float64()})
	return IRR(flows)
}

// TWRR is the time weighted return of the account over the range, computed
// on the full account value (securities plus cash) with sub periods cut at
// every external cash flow.
func (e *Engine) TWRR(account string, r Range) (Percent, error) {
	var flows []Flow
	dates := []Date{r.From}
	e.mu.RLock()
	for cf := range ExternalCashFlows(e.ledger, account, Range{From: r.From.Add(1), To: r.To}) {
		flows = append(flows, Flow{On: cf.On, Amount: cf.Amount.Float64()})
		if last := dates[len(dates)-1]; last != cf.On {
			dates = append(dates, cf.On)
		}
	}
	e.mu.RUnlock()
	if last := dates[len(dates)-1]; last != r.To {
		dates = append(dates, r.To)
	}

	values := make([]Flow, 0, len(dates))
	for _, on := range dates {
		v, err := e.AccountValue(account, on)
		if err != nil {
			return 0, err
		}
		values = append(values, Flow{On: on, Amount: v.Float64()})
	}
	return TWRR(values, flows)
}

// DividendIncome sums the dividends paid into the account over the range.
func (e *Engine) DividendIncome(account string, r Range) Money {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return DividendIncome(e.ledger, account, r)
}

// DividendYield is the range's dividend income over the average securities
// value across it, sampled monthly.
func (e *Engine) DividendYield(account string, r Range) (Percent, error) {
	points, err := e.ValueOverTime(account, r, Monthly)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range points {
		sum += p.TotalValue.Float64()
	}
	e.mu.RLock()
	currency := e.ledger.Currency()
	e.mu.RUnlock()
	avg := M(sum/float64(len(points)), currency)
	return DividendYield(e.DividendIncome(account, r), avg)
}

// valueSeries samples the account value over the range for the risk metrics.
func (e *Engine) valueSeries(account string, r Range, step Period) ([]float64, error) {
	points, err := e.ValueOverTime(account, r, step)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(points))
	e.mu.RLock()
	for i, p := range points {
		values[i] = p.TotalValue.Add(e.ledger.CashBalance(account, p.On)).Float64()
	}
	e.mu.RUnlock()
	return values, nil
}

// Volatility is the annualized standard deviation of the account's periodic
// returns over the range.
func (e *Engine) Volatility(account string, r Range, step Period) (Percent, error) {
	values, err := e.valueSeries(account, r, step)
	if err != nil {
		return 0, err
	}
	return Volatility(PeriodicReturns(values), step)
}

// MaxDrawdown is the account's largest peak to trough decline over the range.
func (e *Engine) MaxDrawdown(account string, r Range, step Period) (Percent, error) {
	values, err := e.valueSeries(account, r, step)
	if err != nil {
		return 0, err
	}
	return MaxDrawdown(values)
}

// SharpeRatio is the account's annualized excess return per unit of
// volatility over the range, against the given risk free rate.
func (e *Engine) SharpeRatio(account string, r Range, step Period, riskFree float64) (float64, error) {
	values, err := e.valueSeries(account, r, step)
	if err != nil {
		return 0, err
	}
	return SharpeRatio(PeriodicReturns(values), riskFree, step)
}
