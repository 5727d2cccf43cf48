package portfolio

import "fmt"

// ValidationError reports a transaction that fails the ledger's structural
// rules. The ledger rejects the whole batch on the first invalid record.
type ValidationError struct {
	ID      string // transaction id when one was assigned
	Account string
	On      Date
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("invalid transaction %s on %s: %s: %s", e.ID, e.On, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid transaction on %s: %s: %s", e.On, e.Field, e.Reason)
}

// InsufficientPositionError reports a sell of more shares than the account
// holds at that point of the replay. Replay stops rather than clamping the
// sale, so a ledger that oversells is surfaced instead of silently repaired.
type InsufficientPositionError struct {
	Account   string
	Symbol    string
	On        Date
	Requested Quantity
	Held      Quantity
}

func (e *InsufficientPositionError) Error() string {
	return fmt.Sprintf("cannot sell %s %s on %s: account %q holds %s",
		e.Requested, e.Symbol, e.On, e.Account, e.Held)
}

// InsufficientDataError reports a metric that cannot be computed from the
// data available, like a CAGR over less than a day or a TWRR with no
// valuation points.
type InsufficientDataError struct {
	Metric string
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s", e.Metric, e.Reason)
}

// ConvergenceError reports an iterative solver that exhausted its iteration
// budget without reaching the requested tolerance.
type ConvergenceError struct {
	Metric     string
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations", e.Metric, e.Iterations)
}

// DomainError reports a metric whose inputs are outside its mathematical
// domain, like a growth rate over a negative starting value.
type DomainError struct {
	Metric string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s undefined: %s", e.Metric, e.Reason)
}
