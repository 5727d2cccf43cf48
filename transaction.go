package portfolio

// TxType identifies the kind of a ledger transaction.
type TxType string

const (
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
	TxDividend TxType = "dividend"
	TxDeposit  TxType = "deposit"
	TxWithdraw TxType = "withdraw"
)

// knownTxTypes lists every type the ledger accepts.
var knownTxTypes = map[TxType]bool{
	TxBuy: true, TxSell: true, TxDividend: true, TxDeposit: true, TxWithdraw: true,
}

// Transaction is a single ledger record. It is account scoped: two accounts
// in the same ledger never share positions or cash.
//
// Field usage depends on Type. Trades (buy, sell) use Quantity, Price and
// Fee. Cash movements (deposit, withdraw) use Amount. Dividends come in two
// forms: a per share payout (Quantity and Price set) or a lump sum (Amount
// set).
type Transaction struct {
	ID       string // unique id, assigned by the ledger when missing
	Type     TxType
	On       Date
	Account  string
	Symbol   string
	Quantity Quantity
	Price    Money // per share
	Fee      Money
	Amount   Money
	Memo     string
}

// NewBuy records the purchase of quantity shares of symbol at a per share
// price, plus a transaction fee.
func NewBuy(on Date, account, symbol string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{Type: TxBuy, On: on, Account: account, Symbol: symbol,
		Quantity: quantity, Price: price, Fee: fee}
}

// NewSell records the sale of quantity shares of symbol at a per share
// price, minus a transaction fee.
func NewSell(on Date, account, symbol string, quantity Quantity, price, fee Money) Transaction {
	return Transaction{Type: TxSell, On: on, Account: account, Symbol: symbol,
		Quantity: quantity, Price: price, Fee: fee}
}

// NewDividend records a lump sum dividend paid by symbol into the account.
func NewDividend(on Date, account, symbol string, amount Money) Transaction {
	return Transaction{Type: TxDividend, On: on, Account: account, Symbol: symbol, Amount: amount}
}

// NewDividendPerShare records a dividend of price per share over quantity
// shares of symbol.
func NewDividendPerShare(on Date, account, symbol string, quantity Quantity, price Money) Transaction {
	return Transaction{Type: TxDividend, On: on, Account: account, Symbol: symbol,
		Quantity: quantity, Price: price}
}

// NewDeposit records an external cash contribution to the account.
func NewDeposit(on Date, account string, amount Money) Transaction {
	return Transaction{Type: TxDeposit, On: on, Account: account, Amount: amount}
}

// NewWithdraw records an external cash withdrawal from the account.
func NewWithdraw(on Date, account string, amount Money) Transaction {
	return Transaction{Type: TxWithdraw, On: on, Account: account, Amount: amount}
}

// Currency returns the currency of the transaction, resolved from whichever
// monetary field is set.
func (t Transaction) Currency() string {
	for _, c := range []string{t.Price.Currency(), t.Amount.Currency(), t.Fee.Currency()} {
		if c != "" {
			return c
		}
	}
	return ""
}

// Gross returns the value of a trade before fees, quantity times price.
func (t Transaction) Gross() Money { return t.Price.Mul(t.Quantity) }

// Cost returns the total cash outlay of a buy, gross plus fee.
func (t Transaction) Cost() Money { return t.Gross().Add(t.Fee) }

// Proceeds returns the net cash received from a sell, gross minus fee.
func (t Transaction) Proceeds() Money { return t.Gross().Sub(t.Fee) }

// DividendAmount returns the cash paid by a dividend, from the lump sum
// amount or the per share form.
func (t Transaction) DividendAmount() Money {
	if !t.Amount.IsZero() {
		return t.Amount
	}
	return t.Gross()
}

// Equal reports whether two transactions carry the same values, ignoring ID.
func (t Transaction) Equal(o Transaction) bool {
	return t.Type == o.Type && t.On == o.On && t.Account == o.Account &&
		t.Symbol == o.Symbol && t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee) &&
		t.Amount.Equal(o.Amount) && t.Memo == o.Memo
}

func (t Transaction) invalid(field, reason string) *ValidationError {
	return &ValidationError{ID: t.ID, Account: t.Account, On: t.On, Field: field, Reason: reason}
}

// Validate checks the structural rules for the transaction's type.
func (t Transaction) Validate() error {
	if !knownTxTypes[t.Type] {
		return t.invalid("type", "unknown transaction type "+string(t.Type))
	}
	if t.On.IsZero() {
		return t.invalid("date", "missing")
	}
	if t.Account == "" {
		return t.invalid("account", "missing")
	}
	if t.Fee.IsNegative() {
		return t.invalid("fee", "must not be negative")
	}
	cur := ""
	for _, c := range []string{t.Price.Currency(), t.Fee.Currency(), t.Amount.Currency()} {
		switch {
		case c == "":
		case cur == "":
			cur = c
		case c != cur:
			return t.invalid("currency", "mixed currencies "+cur+" and "+c)
		}
	}

	switch t.Type {
	case TxBuy, TxSell:
		if t.Symbol == "" {
			return t.invalid("symbol", "missing")
		}
		if !t.Quantity.IsPositive() {
			return t.invalid("quantity", "must be positive")
		}
		// Zero is a valid trade price: free share grants are recorded as
		// zero price buys.
		if t.Price.IsNegative() {
			return t.invalid("price", "must not be negative")
		}
		if !t.Amount.IsZero() {
			return t.invalid("amount", "not used on trades")
		}

	case TxDividend:
		if t.Symbol == "" {
			return t.invalid("symbol", "missing")
		}
		if !t.Fee.IsZero() {
			return t.invalid("fee", "not used on dividends")
		}
		perShare := !t.Quantity.IsZero() || !t.Price.IsZero()
		switch {
		case !t.Amount.IsZero() && perShare:
			return t.invalid("amount", "set either a lump sum or a per share payout, not both")
		case !t.Amount.IsZero():
			if t.Amount.IsNegative() {
				return t.invalid("amount", "must be positive")
			}
		case perShare:
			if !t.Quantity.IsPositive() {
				return t.invalid("quantity", "must be positive")
			}
			if !t.Price.IsPositive() {
				return t.invalid("price", "must be positive")
			}
		default:
			return t.invalid("amount", "dividend pays nothing")
		}

	case TxDeposit, TxWithdraw:
		if t.Symbol != "" {
			return t.invalid("symbol", "not used on cash movements")
		}
		if !t.Fee.IsZero() {
			return t.invalid("fee", "not used on cash movements")
		}
		if !t.Quantity.IsZero() || !t.Price.IsZero() {
			return t.invalid("quantity", "not used on cash movements")
		}
		if !t.Amount.IsPositive() {
			return t.invalid("amount", "must be positive")
		}
	}
	return nil
}
