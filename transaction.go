package folio

import (
	"fmt"
)

// Action is a typed string identifying what a ledger row did. The set is
// closed: the normalizer maps every brokerage row onto one of these.
type Action string

const (
	Buy          Action = "buy"
	Sell         Action = "sell"
	Dividend     Action = "dividend"
	Reinvest     Action = "reinvest"     // dividend reinvestment, adds a lot from internal cash
	Distribution Action = "distribution" // shares received at zero cost (e.g. a split distribution)
	Contribution Action = "contribution" // external money in (transfer or 401k payroll contribution)
	Credit       Action = "credit"       // ESPP employer purchase credit, external cash in
	Withdrawal   Action = "withdrawal"   // external money out
	Fee          Action = "fee"
	Tax          Action = "tax"
	Other        Action = "other"
)

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case Buy, Sell, Dividend, Reinvest, Distribution, Contribution, Credit, Withdrawal, Fee, Tax, Other:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action: %q", s)
	}
}

// IsExternalFlow reports whether the action moves money into or out of the
// portfolio from outside. Only these actions feed the XIRR cash-flow series;
// buys and sells merely move value between cash and securities.
func (a Action) IsExternalFlow() bool {
	return a == Contribution || a == Credit || a == Withdrawal
}

// AddsShares reports whether the action increases the position of its symbol.
func (a Action) AddsShares() bool {
	return a == Buy || a == Reinvest || a == Distribution || a == Contribution
}

// Account identifies which brokerage account a transaction belongs to.
type Account string

const (
	Individual Account = "individual"
	ESPP       Account = "espp"
	Retirement Account = "401k"
)

// ParseAccount parses a string into an Account.
func ParseAccount(s string) (Account, error) {
	switch Account(s) {
	case Individual, ESPP, Retirement:
		return Account(s), nil
	default:
		return "", fmt.Errorf("unknown account: %q", s)
	}
}

// Scope selects which accounts a metric or report is computed over.
type Scope string

const (
	ScopeIndividual Scope = "individual"
	ScopeESPP       Scope = "espp"
	Scope401k       Scope = "401k"
	ScopeTaxable    Scope = "taxable" // individual + espp, the joint brokerage export
	ScopeCombined   Scope = "combined"
)

// Scopes lists the scopes reported in the dashboard summary, in display order.
func Scopes() []Scope {
	return []Scope{ScopeIndividual, ScopeESPP, Scope401k, ScopeCombined}
}

// ParseScope parses a string into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeIndividual, ScopeESPP, Scope401k, ScopeTaxable, ScopeCombined:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown scope: %q", s)
	}
}

// Includes reports whether transactions of the given account belong to the scope.
func (s Scope) Includes(a Account) bool {
	switch s {
	case ScopeCombined:
		return true
	case ScopeTaxable:
		return a == Individual || a == ESPP
	default:
		return Account(s) == a
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeIndividual:
		return "Individual"
	case ScopeESPP:
		return "ESPP"
	case Scope401k:
		return "401k"
	case ScopeTaxable:
		return "Taxable"
	case ScopeCombined:
		return "Combined"
	default:
		return string(s)
	}
}

// Transaction is a single normalized ledger row. It is immutable once
// ingested.
//
// Sign convention: Amount is the cash movement seen from the portfolio's cash
// account, negative for outflows (buys, withdrawals, fees) and positive for
// inflows (sells, dividends, contributions).
type Transaction struct {
	Date        Date
	Account     Account
	Symbol      string // empty for pure cash movements
	Description string
	Action      Action
	Quantity    Quantity // always non-negative; Action carries the direction
	Price       Money    // per-share price when the export provides one
	Amount      Money
}

// When returns the date on which the transaction occurred.
func (t Transaction) When() Date { return t.Date }

// UnitCost returns the per-share cost of a share-moving transaction, derived
// from the explicit price when present, otherwise from amount/quantity.
func (t Transaction) UnitCost() Money {
	if !t.Price.IsZero() {
		return t.Price
	}
	if t.Quantity.IsZero() {
		return Money{}
	}
	return t.Amount.Abs().Div(t.Quantity)
}

// Cost returns the total acquisition cost of a lot-creating transaction.
// Distribution shares are free by definition.
func (t Transaction) Cost() Money {
	if t.Action == Distribution {
		return M(0, t.Amount.Currency())
	}
	return t.Amount.Abs()
}

// Validate checks a transaction for internal consistency. It returns an error
// detailing the first violation found.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction has no date")
	}
	if _, err := ParseAccount(string(t.Account)); err != nil {
		return err
	}
	if _, err := ParseAction(string(t.Action)); err != nil {
		return err
	}
	if t.Quantity.IsNegative() {
		return fmt.Errorf("%s transaction quantity must not be negative, got %s", t.Action, t.Quantity)
	}
	switch t.Action {
	case Buy, Sell, Reinvest, Distribution:
		if t.Symbol == "" {
			return fmt.Errorf("%s transaction has no symbol", t.Action)
		}
		if t.Quantity.IsZero() {
			return fmt.Errorf("%s transaction quantity must be positive, got %s", t.Action, t.Quantity)
		}
	}
	switch t.Action {
	case Buy, Reinvest, Withdrawal, Fee, Tax:
		if t.Amount.IsPositive() {
			return fmt.Errorf("%s transaction amount must not be positive, got %s", t.Action, t.Amount)
		}
	case Sell, Dividend, Contribution, Credit:
		if t.Amount.IsNegative() {
			return fmt.Errorf("%s transaction amount must not be negative, got %s", t.Action, t.Amount)
		}
	}
	return nil
}

func (t Transaction) String() string {
	if t.Symbol == "" {
		return fmt.Sprintf("%s %s %s %s", t.Date, t.Account, t.Action, t.Amount)
	}
	return fmt.Sprintf("%s %s %s %s x%s %s", t.Date, t.Account, t.Action, t.Symbol, t.Quantity, t.Amount)
}

// Equal reports whether two transactions are the same row.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Account == o.Account &&
		t.Symbol == o.Symbol &&
		t.Description == o.Description &&
		t.Action == o.Action &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Amount.Equal(o.Amount)
}
