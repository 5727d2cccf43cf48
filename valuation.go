package portfolio

import (
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// PriceLookup supplies security prices to valuations. PriceAsOf returns
// the most recent price known on or before the given date. The second
// return is false when no price is known by then; a missing price is a
// normal outcome, not an error. The error return is for failures of the
// source itself.
type PriceLookup interface {
	PriceAsOf(symbol string, on Date) (Money, bool, error)
}

// ValuationPoint is the value of an account's securities on one day.
//
// TotalValue covers only the symbols a price was found for; the others are
// listed in MissingSymbols so a partially priced valuation is never mistaken
// for a fully priced one. CostBasis always covers every open position, since
// it derives from the ledger alone.
type ValuationPoint struct {
	On             Date
	TotalValue     Money
	CostBasis      Money
	UnrealizedGain Money
	MissingSymbols []string
}

// Valuation prices reconstructed positions with an injected PriceLookup.
type Valuation struct {
	ledger *Ledger
	prices PriceLookup
}

// NewValuation returns a Valuation over the ledger using the given price
// source.
func NewValuation(l *Ledger, prices PriceLookup) *Valuation {
	return &Valuation{ledger: l, prices: prices}
}

// ValueAt values the account's positions at the end of the given day.
func (v *Valuation) ValueAt(account string, on Date) (ValuationPoint, error) {
	b := newBook(account, v.ledger.Currency())
	for tx := range v.ledger.Transactions(ByAccount(account), NotAfter(on)) {
		if err := b.apply(tx); err != nil {
			return ValuationPoint{}, err
		}
	}
	return v.value(b, on)
}

// ValueOverTime values the account at every sampled date of the range, a
// single forward replay of the ledger with a valuation at each checkpoint.
func (v *Valuation) ValueOverTime(account string, r Range, step Period) ([]ValuationPoint, error) {
	dates := r.Sample(step)
	points := make([]ValuationPoint, 0, len(dates))

	b := newBook(account, v.ledger.Currency())
	next, stop := iter.Pull(v.ledger.Transactions(ByAccount(account)))
	defer stop()

	tx, ok := next()
	for _, on := range dates {
		for ok && !tx.On.After(on) {
			if err := b.apply(tx); err != nil {
				return nil, err
			}
			tx, ok = next()
		}
		point, err := v.value(b, on)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

// value prices the book's open positions as of the given day.
func (v *Valuation) value(b *book, on Date) (ValuationPoint, error) {
	currency := v.ledger.Currency()
	point := ValuationPoint{
		On:         on,
		TotalValue: M(decimal.Zero, currency),
		CostBasis:  M(decimal.Zero, currency),
	}
	for _, symbol := range slices.Sorted(maps.Keys(b.positions)) {
		p := b.positions[symbol]
		if p.Quantity.IsZero() {
			continue
		}
		point.CostBasis = point.CostBasis.Add(p.CostBasis)
		price, found, err := v.prices.PriceAsOf(symbol, on)
		if err != nil {
			return ValuationPoint{}, err
		}
		if !found {
			point.MissingSymbols = append(point.MissingSymbols, symbol)
			continue
		}
		point.TotalValue = point.TotalValue.Add(price.Mul(p.Quantity))
	}
	point.UnrealizedGain = point.TotalValue.Sub(point.CostBasis)
	return point, nil
}
