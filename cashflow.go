package portfolio

import (
	"iter"

	"github.com/shopspring/decimal"
)

// CashFlow is a dated cash movement extracted from the ledger, the raw
// material of the money weighted return metrics. Amount is signed from the
// account's point of view: deposits and dividends are positive, withdrawals
// negative.
//
// External marks flows that cross the account boundary (deposits and
// withdrawals). Dividends stay inside the account, so they are internal:
// they change its value but not its funding.
type CashFlow struct {
	On            Date
	Account       string
	Type          TxType
	Amount        Money
	Symbol        string
	External      bool
	TransactionID string
}

// CashFlows iterates over the account's cash flows within the range, in
// chronological order. Trades are not cash flows: their cash legs stay
// inside the account.
func CashFlows(l *Ledger, account string, r Range) iter.Seq[CashFlow] {
	return func(yield func(CashFlow) bool) {
		for tx := range l.Transactions(ByAccount(account), InRange(r),
			ByType(TxDeposit, TxWithdraw, TxDividend)) {
			cf := CashFlow{
				On:            tx.On,
				Account:       tx.Account,
				Type:          tx.Type,
				Symbol:        tx.Symbol,
				TransactionID: tx.ID,
			}
			switch tx.Type {
			case TxDeposit:
				cf.Amount, cf.External = tx.Amount, true
			case TxWithdraw:
				cf.Amount, cf.External = tx.Amount.Neg(), true
			case TxDividend:
				cf.Amount = tx.DividendAmount()
			}
			if !yield(cf) {
				return
			}
		}
	}
}

// ExternalCashFlows is CashFlows restricted to flows that cross the account
// boundary.
func ExternalCashFlows(l *Ledger, account string, r Range) iter.Seq[CashFlow] {
	return func(yield func(CashFlow) bool) {
		for cf := range CashFlows(l, account, r) {
			if !cf.External {
				continue
			}
			if !yield(cf) {
				return
			}
		}
	}
}

// NetCashFlow sums the signed external flows of the account over the range,
// the net amount of money put into it.
func NetCashFlow(l *Ledger, account string, r Range) Money {
	net := M(decimal.Zero, l.Currency())
	for cf := range ExternalCashFlows(l, account, r) {
		net = net.Add(cf.Amount)
	}
	return net
}

// DividendIncome sums the dividends paid into the account over the range.
func DividendIncome(l *Ledger, account string, r Range) Money {
	income := M(decimal.Zero, l.Currency())
	for cf := range CashFlows(l, account, r) {
		if cf.Type == TxDividend {
			income = income.Add(cf.Amount)
		}
	}
	return income
}
