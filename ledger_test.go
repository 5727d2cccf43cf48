package portfolio

import (
	"errors"
	"slices"
	"testing"
)

func TestNewLedger_SortsByDateKeepingInsertionOrder(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-10"), "main", "AAPL", Q(1), USD(100), NO(0)),
		NewDeposit(day("2025-01-02"), "main", USD(1000)),
		NewBuy(day("2025-01-10"), "main", "MSFT", Q(2), USD(50), NO(0)),
		NewDeposit(day("2025-01-02"), "main", USD(500)),
	)

	var got []string
	for tx := range l.Transactions() {
		got = append(got, tx.On.String()+" "+tx.Symbol)
	}
	want := []string{"2025-01-02 ", "2025-01-02 ", "2025-01-10 AAPL", "2025-01-10 MSFT"}
	if !slices.Equal(got, want) {
		t.Errorf("Transactions() order = %v, want %v", got, want)
	}
}

func TestNewLedger_AssignsMissingIDs(t *testing.T) {
	l := mustLedger(NewDeposit(day("2025-01-02"), "main", USD(1000)))
	for tx := range l.Transactions() {
		if tx.ID == "" {
			t.Errorf("transaction on %s has no id", tx.On)
		}
	}
}

func TestNewLedger_RejectsInvalidTransaction(t *testing.T) {
	cases := []struct {
		name string
		tx   Transaction
	}{
		{"negative quantity", NewBuy(day("2025-01-02"), "main", "AAPL", Q(-1), USD(100), NO(0))},
		{"negative price", NewBuy(day("2025-01-02"), "main", "AAPL", Q(1), USD(-100), NO(0))},
		{"negative fee", NewSell(day("2025-01-02"), "main", "AAPL", Q(1), USD(100), USD(-1))},
		{"missing symbol", NewBuy(day("2025-01-02"), "main", "", Q(1), USD(100), NO(0))},
		{"missing account", NewDeposit(day("2025-01-02"), "", USD(100))},
		{"missing date", NewDeposit(Date{}, "main", USD(100))},
		{"zero amount deposit", NewDeposit(day("2025-01-02"), "main", USD(0))},
		{"dividend pays nothing", NewDividend(day("2025-01-02"), "main", "AAPL", USD(0))},
		{"unknown type", Transaction{Type: "transfer", On: day("2025-01-02"), Account: "main"}},
		{"mixed currencies in one trade", NewBuy(day("2025-01-02"), "main", "AAPL", Q(1), USD(100), M(1, "EUR"))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLedger(c.tx)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("NewLedger() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestNewLedger_AcceptsZeroPriceTrade(t *testing.T) {
	// A free share grant is a buy at price zero.
	l, err := NewLedger(NewBuy(day("2025-01-02"), "main", "AAPL", Q(10), USD(0), NO(0)))
	if err != nil {
		t.Fatalf("NewLedger() rejected a zero price buy: %v", err)
	}
	positions, err := PositionsAt(l, "main", day("2025-01-02"))
	if err != nil {
		t.Fatalf("PositionsAt() error = %v", err)
	}
	p := positions["AAPL"]
	if !p.Quantity.Equal(Q(10)) || !p.CostBasis.IsZero() {
		t.Errorf("granted position = %+v, want 10 shares at zero basis", p)
	}
}

func TestNewLedger_RejectsWholeBatchOnFirstInvalid(t *testing.T) {
	_, err := NewLedger(
		NewDeposit(day("2025-01-02"), "main", USD(1000)),
		NewDeposit(day("2025-01-03"), "main", USD(0)),
	)
	if err == nil {
		t.Fatal("NewLedger() accepted a batch with an invalid transaction")
	}
}

func TestLedger_AppendRejectsForeignCurrency(t *testing.T) {
	l := mustLedger(NewDeposit(day("2025-01-02"), "main", USD(1000)))

	err := l.Append(NewDeposit(day("2025-01-03"), "main", M(100, "EUR")))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Append() error = %v, want *ValidationError", err)
	}
	if verr.Field != "currency" {
		t.Errorf("field = %q, want currency", verr.Field)
	}
	if l.Len() != 1 {
		t.Errorf("ledger length = %d, want 1", l.Len())
	}

	// Amounts with no currency code stay weak and are accepted.
	if err := l.Append(NewDeposit(day("2025-01-04"), "main", NO(10))); err != nil {
		t.Errorf("Append() rejected a weak currency amount: %v", err)
	}
}

func TestLedger_TransactionFilters(t *testing.T) {
	l := mustLedger(
		NewDeposit(day("2025-01-02"), "main", USD(1000)),
		NewBuy(day("2025-01-03"), "main", "AAPL", Q(5), USD(100), NO(0)),
		NewBuy(day("2025-01-04"), "ira", "AAPL", Q(1), USD(100), NO(0)),
		NewDividend(day("2025-02-01"), "main", "AAPL", USD(10)),
	)

	count := func(filters ...func(Transaction) bool) int {
		n := 0
		for range l.Transactions(filters...) {
			n++
		}
		return n
	}

	if got := count(); got != 4 {
		t.Errorf("no filters: got %d transactions, want 4", got)
	}
	if got := count(ByAccount("main")); got != 3 {
		t.Errorf("ByAccount(main): got %d, want 3", got)
	}
	if got := count(ByAccount("main"), BySymbol("AAPL")); got != 2 {
		t.Errorf("ByAccount+BySymbol: got %d, want 2", got)
	}
	if got := count(ByType(TxDividend)); got != 1 {
		t.Errorf("ByType(dividend): got %d, want 1", got)
	}
	if got := count(InRange(NewRange(day("2025-01-01"), day("2025-01-31")))); got != 3 {
		t.Errorf("InRange(january): got %d, want 3", got)
	}
}

func TestLedger_AccountsAndSymbols(t *testing.T) {
	l := mustLedger(
		NewBuy(day("2025-01-03"), "main", "MSFT", Q(5), USD(100), NO(0)),
		NewBuy(day("2025-01-04"), "ira", "AAPL", Q(1), USD(100), NO(0)),
	)
	if got := slices.Collect(l.Accounts()); !slices.Equal(got, []string{"ira", "main"}) {
		t.Errorf("Accounts() = %v", got)
	}
	if got := slices.Collect(l.Symbols()); !slices.Equal(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("Symbols() = %v", got)
	}
}

func TestLedger_CashBalance(t *testing.T) {
	l := mustLedger(
		NewDeposit(day("2025-01-02"), "main", USD(1000)),
		NewBuy(day("2025-01-03"), "main", "AAPL", Q(5), USD(100), USD(5)), // -505
		NewDividend(day("2025-02-01"), "main", "AAPL", USD(10)),           // +10
		NewSell(day("2025-03-01"), "main", "AAPL", Q(2), USD(120), USD(1)), // +239
		NewWithdraw(day("2025-03-02"), "main", USD(100)),                  // -100
	)

	if got := l.CashBalance("main", day("2025-01-02")); !got.Equal(USD(1000)) {
		t.Errorf("CashBalance after deposit = %s, want %s", got, USD(1000))
	}
	if got := l.CashBalance("main", day("2025-03-02")); !got.Equal(USD(644)) {
		t.Errorf("CashBalance at end = %s, want %s", got, USD(644))
	}
	// Other accounts are unaffected.
	if got := l.CashBalance("ira", day("2025-03-02")); !got.IsZero() {
		t.Errorf("CashBalance(ira) = %s, want zero", got)
	}
}

func TestLedger_OldestNewestTransactionDate(t *testing.T) {
	var empty Ledger
	if !empty.OldestTransactionDate().IsZero() || !empty.NewestTransactionDate().IsZero() {
		t.Error("empty ledger should have zero boundary dates")
	}

	l := mustLedger(
		NewDeposit(day("2025-03-01"), "main", USD(1)),
		NewDeposit(day("2025-01-02"), "main", USD(1)),
	)
	if got := l.OldestTransactionDate(); got != day("2025-01-02") {
		t.Errorf("OldestTransactionDate() = %s", got)
	}
	if got := l.NewestTransactionDate(); got != day("2025-03-01") {
		t.Errorf("NewestTransactionDate() = %s", got)
	}
}
