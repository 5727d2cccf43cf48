package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// PricePoint is one observed price of a security.
type PricePoint struct {
	On    Date
	Price Money
}

// PriceTable is an in memory price source keyed by symbol, with as-of
// lookups over date sorted series. It implements PriceLookup.
//
// The table is a plain data holder: loading it from a file or a feed is
// the caller's concern.
type PriceTable struct {
	series map[string][]PricePoint
}

// NewPriceTable returns an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{series: make(map[string][]PricePoint)}
}

// Add records a price for the symbol on the given day, replacing any price
// already recorded for that day.
func (t *PriceTable) Add(symbol string, on Date, price Money) {
	points := t.series[symbol]
	i, found := slices.BinarySearchFunc(points, on, func(p PricePoint, d Date) int {
		return p.On.Compare(d)
	})
	if found {
		points[i].Price = price
		return
	}
	t.series[symbol] = slices.Insert(points, i, PricePoint{On: on, Price: price})
}

// PriceAsOf returns the most recent price of the symbol on or before the
// given day. It is false when the table holds no price by then.
func (t *PriceTable) PriceAsOf(symbol string, on Date) (Money, bool, error) {
	points := t.series[symbol]
	i, found := slices.BinarySearchFunc(points, on, func(p PricePoint, d Date) int {
		return p.On.Compare(d)
	})
	if found {
		return points[i].Price, true, nil
	}
	if i == 0 {
		return Money{}, false, nil
	}
	return points[i-1].Price, true, nil
}

// Latest returns the most recent price point of the symbol.
func (t *PriceTable) Latest(symbol string) (PricePoint, bool) {
	points := t.series[symbol]
	if len(points) == 0 {
		return PricePoint{}, false
	}
	return points[len(points)-1], true
}

// Symbols iterates over the symbols with at least one price, sorted.
func (t *PriceTable) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(t.series)) {
			if !yield(symbol) {
				return
			}
		}
	}
}

// priceRecord is the wire form of one price line.
type priceRecord struct {
	Symbol   string          `json:"symbol"`
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// EncodePrices writes the table as JSONL, one price per line, sorted by
// symbol then date.
func EncodePrices(w io.Writer, t *PriceTable) error {
	for symbol := range t.Symbols() {
		for _, p := range t.series[symbol] {
			var obj jsonObjectWriter
			obj.Append("symbol", symbol)
			obj.Append("date", p.On)
			obj.Append("price", p.Price.Decimal())
			obj.Optional("currency", p.Price.Currency())
			data, err := obj.MarshalJSON()
			if err != nil {
				return err
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodePrices reads a JSONL stream of prices into a table.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	t := NewPriceTable()
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var rec priceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode price: %w", line, err)
		}
		if rec.Symbol == "" || rec.Date.IsZero() {
			return nil, fmt.Errorf("line %d: price needs a symbol and a date", line)
		}
		t.Add(rec.Symbol, rec.Date, M(rec.Price, rec.Currency))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
