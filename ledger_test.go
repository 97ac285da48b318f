package folio

import (
	"errors"
	"testing"
	"time"
)

func testLedger() *Ledger {
	l := NewLedger()
	l.Append(
		Transaction{Date: NewDate(2024, time.March, 1), Account: Individual, Action: Sell, Symbol: "AAPL", Quantity: Q(5), Price: USD(200), Amount: USD(1000)},
		Transaction{Date: NewDate(2024, time.January, 10), Account: Individual, Action: Contribution, Amount: USD(2000)},
		Transaction{Date: NewDate(2024, time.January, 15), Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(10), Price: USD(185.5), Amount: USD(-1855)},
		Transaction{Date: NewDate(2024, time.February, 1), Account: ESPP, Action: Credit, Amount: USD(500)},
		Transaction{Date: NewDate(2024, time.February, 1), Account: ESPP, Action: Buy, Symbol: "WORK", Quantity: Q(20), Price: USD(25), Amount: USD(-500)},
		Transaction{Date: NewDate(2024, time.February, 5), Account: Retirement, Action: Contribution, Symbol: "FID GROWTH CO POOL", Quantity: Q(10), Price: USD(50), Amount: USD(500)},
	)
	return l
}

func TestLedgerChronologicalOrder(t *testing.T) {
	l := testLedger()
	var prev Date
	for _, tx := range l.Transactions() {
		if tx.Date.Before(prev) {
			t.Fatalf("ledger out of order: %s after %s", tx.Date, prev)
		}
		prev = tx.Date
	}
	if got := l.OldestTransactionDate(); got != NewDate(2024, time.January, 10) {
		t.Errorf("OldestTransactionDate = %s", got)
	}
	if got := l.NewestTransactionDate(); got != NewDate(2024, time.March, 1) {
		t.Errorf("NewestTransactionDate = %s", got)
	}
}

func TestLedgerStableSameDayOrder(t *testing.T) {
	// the ESPP credit and the buy it funds share a date; the credit was
	// appended first and must stay first
	l := testLedger()
	var sameDay []Action
	for _, tx := range l.Transactions(ByScope(ScopeESPP)) {
		sameDay = append(sameDay, tx.Action)
	}
	if len(sameDay) != 2 || sameDay[0] != Credit || sameDay[1] != Buy {
		t.Errorf("same-day order = %v, want [credit buy]", sameDay)
	}
}

func TestLedgerFilters(t *testing.T) {
	l := testLedger()
	count := 0
	for _, tx := range l.Transactions(ByScope(ScopeIndividual), ByAction(Buy, Sell)) {
		if tx.Account != Individual {
			t.Errorf("unexpected account %s", tx.Account)
		}
		count++
	}
	if count != 2 {
		t.Errorf("filtered count = %d, want 2", count)
	}
}

func TestLedgerSymbols(t *testing.T) {
	l := testLedger()
	got := l.Symbols(ScopeCombined, NewDate(2024, time.December, 31))
	want := []string{"AAPL", "WORK", "FID GROWTH CO POOL"}
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Symbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	// scoping
	if got := l.Symbols(Scope401k, NewDate(2024, time.December, 31)); len(got) != 1 || got[0] != "FID GROWTH CO POOL" {
		t.Errorf("401k Symbols = %v", got)
	}
}

func TestLedgerPosition(t *testing.T) {
	l := testLedger()
	pos, err := l.Position("AAPL", ScopeIndividual, NewDate(2024, time.December, 31))
	if err != nil {
		t.Fatal(err)
	}
	if !pos.Equal(Q(5)) {
		t.Errorf("position = %s, want 5", pos)
	}

	// before the sell
	pos, err = l.Position("AAPL", ScopeIndividual, NewDate(2024, time.February, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !pos.Equal(Q(10)) {
		t.Errorf("position = %s, want 10", pos)
	}
}

func TestLedgerPositionNegative(t *testing.T) {
	l := NewLedger()
	l.Append(
		Transaction{Date: NewDate(2024, time.January, 2), Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(5), Amount: USD(-500)},
		Transaction{Date: NewDate(2024, time.January, 3), Account: Individual, Action: Sell, Symbol: "AAPL", Quantity: Q(10), Amount: USD(1000)},
	)
	_, err := l.Position("AAPL", ScopeIndividual, NewDate(2024, time.December, 31))
	var negErr *NegativeHoldingError
	if !errors.As(err, &negErr) {
		t.Fatalf("expected NegativeHoldingError, got %v", err)
	}
	if negErr.Symbol != "AAPL" || negErr.Date != NewDate(2024, time.January, 3) {
		t.Errorf("unexpected error details: %+v", negErr)
	}
}
