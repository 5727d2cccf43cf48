package renderer

import (
	"maps"
	"slices"

	"github.com/ngaillard/portfolio"
)

// Holding is the data of a holding report: what an account owns on a given
// day, priced and totaled. Numbers keep their exact decimal types so the
// rendering reuses their own formatters.
type Holding struct {
	Account    string
	Date       portfolio.Date
	Securities []HoldingSecurity
	Cash       portfolio.Money
	// TotalValue is the priced securities value plus cash.
	TotalValue     portfolio.Money
	CostBasis      portfolio.Money
	UnrealizedGain portfolio.Money
	// MissingSymbols lists held securities with no usable price.
	MissingSymbols []string
}

// HoldingSecurity is one priced position row.
type HoldingSecurity struct {
	Symbol      string
	Quantity    portfolio.Quantity
	AvgCost     portfolio.Money
	Price       portfolio.Money
	MarketValue portfolio.Money
	// Priced is false when no price was found; MarketValue is then zero.
	Priced bool
}

// NewHolding builds a holding report for the account on the given day.
func NewHolding(e *portfolio.Engine, account string, on portfolio.Date) (*Holding, error) {
	point, err := e.ValueAt(account, on)
	if err != nil {
		return nil, err
	}
	positions, err := e.Positions(account, on)
	if err != nil {
		return nil, err
	}

	h := &Holding{
		Account:        account,
		Date:           on,
		Cash:           e.Ledger().CashBalance(account, on),
		CostBasis:      point.CostBasis,
		UnrealizedGain: point.UnrealizedGain,
		MissingSymbols: point.MissingSymbols,
	}
	h.TotalValue = point.TotalValue.Add(h.Cash)

	missing := make(map[string]bool, len(point.MissingSymbols))
	for _, s := range point.MissingSymbols {
		missing[s] = true
	}
	for _, symbol := range slices.Sorted(maps.Keys(positions)) {
		p := positions[symbol]
		row := HoldingSecurity{
			Symbol:   symbol,
			Quantity: p.Quantity,
			AvgCost:  p.AvgCost(),
			Priced:   !missing[symbol],
		}
		if row.Priced {
			// The valuation already resolved the as-of price; recompute the
			// row value from it for display.
			value, _, err := e.PriceAsOf(symbol, on)
			if err != nil {
				return nil, err
			}
			row.Price = value
			row.MarketValue = value.Mul(p.Quantity)
		}
		h.Securities = append(h.Securities, row)
	}
	return h, nil
}
