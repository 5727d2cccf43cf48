package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// this file handles the CSV interchange format, for moving a ledger in and
// out of spreadsheets and broker exports.

// csvHeader is the canonical column order of the interchange format.
var csvHeader = []string{"date", "type", "account", "symbol", "quantity", "price", "fee", "amount", "currency", "memo"}

// ExportTransactions writes the ledger as CSV in the interchange format,
// one transaction per row in chronological order.
func ExportTransactions(w io.Writer, l *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for tx := range l.Transactions() {
		row := []string{
			tx.On.String(),
			string(tx.Type),
			tx.Account,
			tx.Symbol,
			emptyIfZero(tx.Quantity.Decimal()),
			emptyIfZero(tx.Price.Decimal()),
			emptyIfZero(tx.Fee.Decimal()),
			emptyIfZero(tx.Amount.Decimal()),
			tx.Currency(),
			tx.Memo,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func emptyIfZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// ImportTransactions reads transactions from CSV in the interchange format
// and returns a validated ledger. The header row is required; column order
// must match the exported format.
func ImportTransactions(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected csv column %d: got %q want %q", i+1, header[i], want)
		}
	}

	var txs []Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tx, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return NewLedger(txs...)
}

func parseCSVRow(row []string) (Transaction, error) {
	on, err := ParseDate(row[0])
	if err != nil {
		return Transaction{}, err
	}
	currency := row[8]
	tx := Transaction{
		Type:    TxType(row[1]),
		On:      on,
		Account: row[2],
		Symbol:  row[3],
		Memo:    row[9],
	}
	if tx.Quantity, err = parseQuantity(row[4]); err != nil {
		return Transaction{}, fmt.Errorf("quantity: %w", err)
	}
	for _, field := range []struct {
		name  string
		value string
		dst   *Money
	}{
		{"price", row[5], &tx.Price},
		{"fee", row[6], &tx.Fee},
		{"amount", row[7], &tx.Amount},
	} {
		d, err := parseDecimal(field.value)
		if err != nil {
			return Transaction{}, fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = M(d, currency)
	}
	return tx, nil
}

func parseQuantity(s string) (Quantity, error) {
	d, err := parseDecimal(s)
	return Q(d), err
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
