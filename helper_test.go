package portfolio

// USD is a helper for tests to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for tests to create dates from ISO strings
func day(s string) Date { return MustParseDate(s) }

// mustLedger is a helper for tests to build a ledger that must be valid
func mustLedger(txs ...Transaction) *Ledger {
	l, err := NewLedger(txs...)
	if err != nil {
		panic(err.Error())
	}
	return l
}

// approx reports whether two floats agree within tolerance
func approx(got, want, tol float64) bool {
	d := got - want
	return d < tol && d > -tol
}
