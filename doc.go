// Package portfolio reconstructs point-in-time portfolio state from a
// chronological transaction ledger and derives performance metrics from it.
//
// The package is organised as a small pipeline. A Ledger validates and
// orders raw transactions. Replaying the ledger produces positions, cost
// bases and realized gains for any date. A Valuation combines positions
// with an injected PriceLookup to produce value series, and the metrics
// functions (CAGR, IRR, TWRR, dividend and risk statistics) are pure
// computations over those series.
//
// The engine owns no persistent state and performs no I/O: every result
// is a deterministic replay of the ledger and price data supplied by the
// caller. An Engine wraps the pipeline with an invalidation-aware cache
// keyed by account and date for callers that issue repeated queries.
package portfolio
