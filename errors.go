package folio

import (
	"errors"
	"fmt"
)

// ErrNoConvergence is returned by XIRR when no rate can be bracketed or the
// solver does not converge within its iteration budget. Callers report the
// metric as undefined ("N/A"), not as a failure: an all-negative or partially
// funded ledger is valid input.
var ErrNoConvergence = errors.New("xirr: no convergence")

// NegativeHoldingError signals that cumulative sells exceed cumulative buys
// for a symbol, which indicates corrupted or incomplete source data. The
// computation for the affected scope is aborted; other scopes are unaffected.
type NegativeHoldingError struct {
	Scope  Scope
	Symbol string
	Date   Date
	Held   Quantity // the (negative) cumulative position reached
}

func (e *NegativeHoldingError) Error() string {
	return fmt.Sprintf("negative holding of %s for %s in scope %s on %s: a sell exceeds prior holdings",
		e.Held, e.Symbol, e.Scope, e.Date)
}
