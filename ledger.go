package folio

import (
	"iter"
	"slices"
	"sort"
)

// Ledger represents the normalized list of transactions.
//
// In a Ledger transactions are always in chronological order; rows on the
// same day keep their ingestion order (the sort is stable).
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator that yields each transaction in
// chronological order. When filters are given, a transaction is yielded only
// if it matches all of them.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// Symbols returns the symbols traded in the given scope up to and including
// the given date, in first-appearance order.
func (l *Ledger) Symbols(scope Scope, on Date) []string {
	var symbols []string
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			break
		}
		if tx.Symbol == "" || !scope.Includes(tx.Account) {
			continue
		}
		if !slices.Contains(symbols, tx.Symbol) {
			symbols = append(symbols, tx.Symbol)
		}
	}
	return symbols
}

// Position computes the cumulative quantity of a symbol held in a scope on a
// given date. It returns a NegativeHoldingError if a sell ever exceeds the
// prior holdings, which signals upstream data corruption.
func (l *Ledger) Position(symbol string, scope Scope, on Date) (Quantity, error) {
	var position Quantity
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		if tx.Symbol != symbol || !scope.Includes(tx.Account) {
			continue
		}
		switch {
		case tx.Action.AddsShares():
			position = position.Add(tx.Quantity)
		case tx.Action == Sell:
			position = position.Sub(tx.Quantity)
			if position.IsNegative() {
				return position, &NegativeHoldingError{Scope: scope, Symbol: symbol, Date: tx.Date, Held: position}
			}
		}
	}
	return position, nil
}

// ByScope returns a predicate that filters transactions by scope.
func ByScope(scope Scope) func(Transaction) bool {
	return func(tx Transaction) bool { return scope.Includes(tx.Account) }
}

// BySymbol returns a predicate that filters transactions by symbol.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// ByAction returns a predicate that filters transactions by action.
func ByAction(actions ...Action) func(Transaction) bool {
	return func(tx Transaction) bool { return slices.Contains(actions, tx.Action) }
}

// Until returns a predicate that keeps transactions on or before the date.
func Until(on Date) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.Date.After(on) }
}
