package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON encodes a quantity as a plain JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return json.Marshal(q.value) }

// UnmarshalJSON decodes a quantity from a JSON number.
func (q *Quantity) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &q.value) }

// MarshalJSON encodes a transaction as a single JSON object with a stable
// field order. Monetary fields are plain numbers; the currency is a single
// shared field, written once.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.On)
	w.Append("account", t.Account)
	w.Optional("symbol", t.Symbol)
	if !t.Quantity.IsZero() {
		w.Append("quantity", t.Quantity)
	}
	if !t.Price.IsZero() {
		w.Append("price", t.Price.Decimal())
	}
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Decimal())
	}
	if !t.Amount.IsZero() {
		w.Append("amount", t.Amount.Decimal())
	}
	w.Optional("currency", t.Currency())
	w.Optional("id", t.ID)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// txRecord is the wire form of a transaction.
type txRecord struct {
	Type     TxType          `json:"type"`
	Date     Date            `json:"date"`
	Account  string          `json:"account"`
	Symbol   string          `json:"symbol"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	ID       string          `json:"id"`
	Memo     string          `json:"memo"`
}

// UnmarshalJSON decodes a transaction from its wire form.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var rec txRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*t = Transaction{
		ID:       rec.ID,
		Type:     rec.Type,
		On:       rec.Date,
		Account:  rec.Account,
		Symbol:   rec.Symbol,
		Quantity: rec.Quantity,
		Price:    M(rec.Price, rec.Currency),
		Fee:      M(rec.Fee, rec.Currency),
		Amount:   M(rec.Amount, rec.Currency),
		Memo:     rec.Memo,
	}
	return nil
}

// EncodeLedger writes the ledger as JSONL, one transaction per line in
// chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTransaction writes one transaction as a JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode transaction %s: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// DecodeLedger reads a JSONL stream of transactions and returns a validated
// ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewLedger(txs...)
}
