package portfolio

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostBasisMethod defines the method for calculating cost basis.
type CostBasisMethod int

const (
	// AverageCost averages the cost of all shares held.
	AverageCost CostBasisMethod = iota
)

func (m CostBasisMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	default:
		return "unknown"
	}
}

// Ledger is a validated list of transactions.
//
// Transactions are kept in chronological order. Transactions on the same
// day keep the relative order in which they were recorded, so a replay of
// the ledger is deterministic.
type Ledger struct {
	transactions []Transaction
}

// NewLedger builds a ledger from the given transactions. Every transaction
// is validated; the first invalid one rejects the whole batch. Transactions
// without an ID are assigned one.
func NewLedger(txs ...Transaction) (*Ledger, error) {
	l := &Ledger{}
	if err := l.Append(txs...); err != nil {
		return nil, err
	}
	return l, nil
}

// Append validates and adds transactions to the ledger, keeping it sorted.
// On error the ledger is left unchanged. The ledger is single currency: a
// transaction in a different currency than the ledger's is rejected, so a
// mismatch surfaces here instead of deep in a replay.
func (l *Ledger) Append(txs ...Transaction) error {
	currency := l.Currency()
	for i := range txs {
		if err := txs[i].Validate(); err != nil {
			return err
		}
		if c := txs[i].Currency(); c != "" {
			if currency == "" {
				currency = c
			} else if c != currency {
				return &ValidationError{ID: txs[i].ID, Account: txs[i].Account, On: txs[i].On,
					Field: "currency", Reason: "currency " + c + " does not match the ledger's " + currency}
			}
		}
		if txs[i].ID == "" {
			txs[i].ID = uuid.NewString()
		}
	}
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
	return nil
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].On.Before(l.transactions[j].On)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// OldestTransactionDate returns the date of the earliest transaction, or
// the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].On
}

// NewestTransactionDate returns the date of the latest transaction, or the
// zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].On
}

// Currency returns the currency carried by the ledger's transactions, the
// first non empty code in chronological order.
func (l *Ledger) Currency() string {
	for _, tx := range l.transactions {
		if c := tx.Currency(); c != "" {
			return c
		}
	}
	return ""
}

// ByAccount returns a predicate that keeps transactions of one account.
// The empty account matches every account, for aggregate views.
func ByAccount(account string) func(Transaction) bool {
	return func(tx Transaction) bool { return account == "" || tx.Account == account }
}

// BySymbol returns a predicate that keeps transactions of one security.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// ByType returns a predicate that keeps transactions of one type.
func ByType(types ...TxType) func(Transaction) bool {
	return func(tx Transaction) bool { return slices.Contains(types, tx.Type) }
}

// InRange returns a predicate that keeps transactions dated within r.
func InRange(r Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.On) }
}

// NotAfter returns a predicate that keeps transactions dated on or before the day.
func NotAfter(on Date) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.On.After(on) }
}

// Transactions iterates over the ledger in chronological order, yielding
// transactions that match every given filter. With no filters it yields
// every transaction.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
	next:
		for _, tx := range l.transactions {
			for _, keep := range filters {
				if !keep(tx) {
					continue next
				}
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Accounts iterates over the distinct account names in the ledger, sorted.
func (l *Ledger) Accounts() iter.Seq[string] {
	return l.distinct(func(tx Transaction) string { return tx.Account })
}

// Symbols iterates over the distinct security symbols in the ledger, sorted.
func (l *Ledger) Symbols() iter.Seq[string] {
	return l.distinct(func(tx Transaction) string { return tx.Symbol })
}

func (l *Ledger) distinct(key func(Transaction) string) iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			if k := key(tx); k != "" {
				visited[k] = struct{}{}
			}
		}
		for _, k := range slices.Sorted(maps.Keys(visited)) {
			if !yield(k) {
				return
			}
		}
	}
}

// CashBalance computes the cash held by an account at the end of a day:
// deposits and dividends in, withdrawals out, buys out and sells in, net
// of fees.
func (l *Ledger) CashBalance(account string, on Date) Money {
	balance := M(decimal.Zero, l.Currency())
	for tx := range l.Transactions(ByAccount(account), NotAfter(on)) {
		switch tx.Type {
		case TxDeposit:
			balance = balance.Add(tx.Amount)
		case TxWithdraw:
			balance = balance.Sub(tx.Amount)
		case TxDividend:
			balance = balance.Add(tx.DividendAmount())
		case TxBuy:
			balance = balance.Sub(tx.Cost())
		case TxSell:
			balance = balance.Add(tx.Proceeds())
		}
	}
	return balance
}
