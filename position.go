package portfolio

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Position is the state of one security holding in an account: how many
// shares are held and what they cost to acquire under the average cost
// method.
type Position struct {
	Symbol    string
	Quantity  Quantity
	CostBasis Money // total acquisition cost of the open quantity, fees included
	// RealizedGain is the net gain locked in by sells of this symbol up to
	// the snapshot date, fees deducted.
	RealizedGain Money
}

// AvgCost returns the average acquisition cost of one share.
func (p Position) AvgCost() Money {
	if p.Quantity.IsZero() {
		return Money{}
	}
	return p.CostBasis.Div(p.Quantity)
}

// book replays trades for a single account and accumulates positions and
// realized gains. It is the single source of truth for cost basis: every
// higher level result (valuations, gains, metrics) derives from a replay.
type book struct {
	account   string
	currency  string
	positions map[string]*Position
	realized  map[string]Money // realized gain per symbol, fees deducted
}

func newBook(account, currency string) *book {
	return &book{
		account:   account,
		currency:  currency,
		positions: make(map[string]*Position),
		realized:  make(map[string]Money),
	}
}

func (b *book) position(symbol string) *Position {
	p, ok := b.positions[symbol]
	if !ok {
		p = &Position{Symbol: symbol, CostBasis: M(decimal.Zero, b.currency)}
		b.positions[symbol] = p
	}
	return p
}

// apply folds one transaction into the book. Cash movements and dividends
// do not touch positions. A sell larger than the open position stops the
// replay with an InsufficientPositionError.
func (b *book) apply(tx Transaction) error {
	switch tx.Type {
	case TxBuy:
		p := b.position(tx.Symbol)
		p.Quantity = p.Quantity.Add(tx.Quantity)
		p.CostBasis = p.CostBasis.Add(tx.Cost())

	case TxSell:
		p := b.position(tx.Symbol)
		if p.Quantity.LessThan(tx.Quantity) {
			return &InsufficientPositionError{
				Account:   b.account,
				Symbol:    tx.Symbol,
				On:        tx.On,
				Requested: tx.Quantity,
				Held:      p.Quantity,
			}
		}
		avg := p.AvgCost()
		sold := avg.Mul(tx.Quantity)
		gain := tx.Gross().Sub(sold).Sub(tx.Fee)
		b.realized[tx.Symbol] = b.realized[tx.Symbol].Add(gain)
		p.Quantity = p.Quantity.Sub(tx.Quantity)
		p.CostBasis = p.CostBasis.Sub(sold)
		if p.Quantity.IsZero() {
			// A position sold to zero starts over on the next buy.
			p.CostBasis = M(decimal.Zero, b.currency)
		}
	}
	return nil
}

// snapshot returns the open positions, dropping empty ones. Gains realized
// by closed positions remain reachable through RealizedGains.
func (b *book) snapshot() map[string]Position {
	out := make(map[string]Position, len(b.positions))
	for symbol, p := range b.positions {
		if p.Quantity.IsZero() {
			continue
		}
		cp := *p
		cp.RealizedGain = b.realized[symbol]
		out[symbol] = cp
	}
	return out
}

// totalCostBasis sums the cost basis of every open position.
func (b *book) totalCostBasis() Money {
	total := M(decimal.Zero, b.currency)
	for _, p := range b.positions {
		total = total.Add(p.CostBasis)
	}
	return total
}

// PositionsAt replays the account's ledger up to and including the given
// date and returns its open positions by symbol. Positions sold down to
// zero are omitted.
func PositionsAt(l *Ledger, account string, on Date) (map[string]Position, error) {
	b := newBook(account, l.Currency())
	for tx := range l.Transactions(ByAccount(account), NotAfter(on)) {
		if err := b.apply(tx); err != nil {
			return nil, err
		}
	}
	return b.snapshot(), nil
}

// PositionSnapshot is the open positions of an account on one date.
type PositionSnapshot struct {
	On        Date
	Positions map[string]Position
}

// PositionsOverTime replays the account's ledger once and snapshots the open
// positions at every requested date. The dates are sorted ascending first,
// so callers need not presort them.
func PositionsOverTime(l *Ledger, account string, dates []Date) ([]PositionSnapshot, error) {
	sorted := make([]Date, len(dates))
	copy(sorted, dates)
	slices.SortFunc(sorted, Date.Compare)

	b := newBook(account, l.Currency())
	next, stop := iter.Pull(l.Transactions(ByAccount(account)))
	defer stop()

	snapshots := make([]PositionSnapshot, 0, len(sorted))
	tx, ok := next()
	for _, on := range sorted {
		for ok && !tx.On.After(on) {
			if err := b.apply(tx); err != nil {
				return nil, err
			}
			tx, ok = next()
		}
		snapshots = append(snapshots, PositionSnapshot{On: on, Positions: b.snapshot()})
	}
	return snapshots, nil
}

// RealizedGains returns the net gain realized by sells of the account dated
// within the range, per symbol. Gains are computed against the average cost
// at the time of each sell, with the sell fee deducted.
func RealizedGains(l *Ledger, account string, r Range) (map[string]Money, error) {
	b := newBook(account, l.Currency())
	gains := make(map[string]Money)
	for tx := range l.Transactions(ByAccount(account), NotAfter(r.To)) {
		before := b.realized[tx.Symbol]
		if err := b.apply(tx); err != nil {
			return nil, err
		}
		if tx.Type == TxSell && r.Contains(tx.On) {
			gains[tx.Symbol] = gains[tx.Symbol].Add(b.realized[tx.Symbol].Sub(before))
		}
	}
	return gains, nil
}

// TotalRealizedGain sums RealizedGains over every symbol.
func TotalRealizedGain(l *Ledger, account string, r Range) (Money, error) {
	gains, err := RealizedGains(l, account, r)
	if err != nil {
		return Money{}, err
	}
	total := M(decimal.Zero, l.Currency())
	for _, g := range gains {
		total = total.Add(g)
	}
	return total, nil
}
