// Package folio implements the core of a personal finance dashboard: it turns
// normalized brokerage transaction ledgers into portfolio performance metrics
// (money-weighted and time-weighted returns, realized and unrealized gains)
// and position snapshots suitable for chart and table rendering.
//
// The package is organized around a small set of value types (Date, Money,
// Quantity, Percent), an immutable chronological Ledger of flat Transactions,
// a MarketData price store with carry-forward lookups, and stateless
// calculators (Snapshot, the metrics functions, allocation grouping) that are
// pure functions of the ledger, the market data and a query date.
package folio
