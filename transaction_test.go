package folio

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	on := NewDate(2024, time.May, 2)
	tests := []struct {
		name string
		tx   Transaction
		err  bool
	}{
		{"valid buy", Transaction{Date: on, Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(10), Amount: USD(-1855)}, false},
		{"valid sell", Transaction{Date: on, Account: Individual, Action: Sell, Symbol: "AAPL", Quantity: Q(5), Amount: USD(1000)}, false},
		{"valid contribution", Transaction{Date: on, Account: Individual, Action: Contribution, Amount: USD(2000)}, false},
		{"valid 401k contribution", Transaction{Date: on, Account: Retirement, Action: Contribution, Symbol: "FID GROWTH CO POOL", Quantity: Q(10), Amount: USD(500)}, false},
		{"no date", Transaction{Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(10), Amount: USD(-1)}, true},
		{"unknown account", Transaction{Date: on, Account: "savings", Action: Buy, Symbol: "AAPL", Quantity: Q(10), Amount: USD(-1)}, true},
		{"unknown action", Transaction{Date: on, Account: Individual, Action: "short", Symbol: "AAPL", Quantity: Q(10), Amount: USD(-1)}, true},
		{"negative quantity", Transaction{Date: on, Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(-10), Amount: USD(-1)}, true},
		{"buy without symbol", Transaction{Date: on, Account: Individual, Action: Buy, Quantity: Q(10), Amount: USD(-1)}, true},
		{"sell with zero quantity", Transaction{Date: on, Account: Individual, Action: Sell, Symbol: "AAPL", Amount: USD(1)}, true},
		{"buy with positive amount", Transaction{Date: on, Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(10), Amount: USD(100)}, true},
		{"sell with negative amount", Transaction{Date: on, Account: Individual, Action: Sell, Symbol: "AAPL", Quantity: Q(10), Amount: USD(-100)}, true},
		{"withdrawal with positive amount", Transaction{Date: on, Account: Individual, Action: Withdrawal, Amount: USD(100)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if (err != nil) != tt.err {
				t.Errorf("Validate() error = %v, want error %v", err, tt.err)
			}
		})
	}
}

func TestUnitCost(t *testing.T) {
	on := NewDate(2024, time.May, 2)

	// explicit price wins
	tx := Transaction{Date: on, Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(10), Price: USD(185.5), Amount: USD(-1855)}
	if got := tx.UnitCost(); !got.Equal(USD(185.5)) {
		t.Errorf("UnitCost = %s, want %s", got, USD(185.5))
	}

	// derived from amount when no price is given
	tx.Price = Money{}
	if got := tx.UnitCost(); !got.Equal(USD(185.5)) {
		t.Errorf("derived UnitCost = %s, want %s", got, USD(185.5))
	}
}

func TestScopeIncludes(t *testing.T) {
	tests := []struct {
		scope   Scope
		account Account
		want    bool
	}{
		{ScopeIndividual, Individual, true},
		{ScopeIndividual, ESPP, false},
		{ScopeESPP, ESPP, true},
		{Scope401k, Retirement, true},
		{Scope401k, Individual, false},
		{ScopeTaxable, Individual, true},
		{ScopeTaxable, ESPP, true},
		{ScopeTaxable, Retirement, false},
		{ScopeCombined, Individual, true},
		{ScopeCombined, ESPP, true},
		{ScopeCombined, Retirement, true},
	}
	for _, tt := range tests {
		if got := tt.scope.Includes(tt.account); got != tt.want {
			t.Errorf("%s.Includes(%s) = %v, want %v", tt.scope, tt.account, got, tt.want)
		}
	}
}

func TestActionClasses(t *testing.T) {
	for _, a := range []Action{Contribution, Credit, Withdrawal} {
		if !a.IsExternalFlow() {
			t.Errorf("%s should be an external flow", a)
		}
	}
	for _, a := range []Action{Buy, Sell, Dividend, Reinvest, Fee, Tax} {
		if a.IsExternalFlow() {
			t.Errorf("%s should not be an external flow", a)
		}
	}
	for _, a := range []Action{Buy, Reinvest, Distribution, Contribution} {
		if !a.AddsShares() {
			t.Errorf("%s should add shares", a)
		}
	}
	if Sell.AddsShares() {
		t.Error("sell should not add shares")
	}
}
