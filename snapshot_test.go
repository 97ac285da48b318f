package folio

import (
	"testing"
	"time"
)

func testMarket() *MarketData {
	m := NewMarketData()
	m.Add("AAPL", NewDate(2024, time.June, 28), USD(210))
	m.Add("WORK", NewDate(2024, time.June, 28), USD(30))
	m.Add("FID GROWTH CO POOL", NewDate(2024, time.June, 28), USD(55))
	return m
}

func TestSnapshotValues(t *testing.T) {
	l := testLedger()
	s, err := NewSnapshot(l, testMarket(), ScopeCombined, NewDate(2024, time.June, 30))
	if err != nil {
		t.Fatal(err)
	}
	// AAPL 5 @ 210, WORK 20 @ 30, FID GROWTH CO POOL 10 @ 55
	if got := s.TotalValue(); !got.Equal(USD(2200)) {
		t.Errorf("TotalValue = %s, want %s", got, USD(2200))
	}
	if len(s.Holdings) != 3 {
		t.Fatalf("holdings = %d, want 3", len(s.Holdings))
	}
	for _, h := range s.Holdings {
		if h.Symbol != "AAPL" {
			continue
		}
		if !h.Quantity.Equal(Q(5)) || !h.MarketValue.Equal(USD(1050)) {
			t.Errorf("AAPL holding = %s x%s", h.MarketValue, h.Quantity)
		}
		// 5 remaining from the 10 bought at 185.5
		if !h.CostBasis.Equal(USD(927.5)) {
			t.Errorf("AAPL basis = %s, want %s", h.CostBasis, USD(927.5))
		}
		if !h.UnrealizedGain.Equal(USD(122.5)) {
			t.Errorf("AAPL unrealized = %s, want %s", h.UnrealizedGain, USD(122.5))
		}
	}
}

func TestSnapshotEmptyScope(t *testing.T) {
	l := NewLedger()
	l.Append(Transaction{Date: NewDate(2024, time.January, 2), Account: Individual, Action: Contribution, Amount: USD(100)})

	s, err := NewSnapshot(l, NewMarketData(), Scope401k, NewDate(2024, time.June, 30))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Holdings) != 0 {
		t.Errorf("holdings = %d, want none", len(s.Holdings))
	}
	if !s.TotalValue().IsZero() {
		t.Errorf("TotalValue = %s, want zero", s.TotalValue())
	}
}

func TestSnapshotOmitsClosedPositions(t *testing.T) {
	l := NewLedger()
	l.Append(
		Transaction{Date: NewDate(2024, time.January, 2), Account: Individual, Action: Buy, Symbol: "AAPL", Quantity: Q(5), Price: USD(10), Amount: USD(-50)},
		Transaction{Date: NewDate(2024, time.February, 2), Account: Individual, Action: Sell, Symbol: "AAPL", Quantity: Q(5), Price: USD(12), Amount: USD(60)},
	)
	s, err := NewSnapshot(l, testMarket(), ScopeIndividual, NewDate(2024, time.June, 30))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Holdings) != 0 {
		t.Errorf("closed position still listed: %v", s.Holdings)
	}
}

func TestSnapshotFallsBackToCostBasis(t *testing.T) {
	// no market price at all for the symbol: value at cost
	l := NewLedger()
	l.Append(Transaction{Date: NewDate(2024, time.January, 2), Account: Individual, Action: Buy, Symbol: "OBSCURE", Quantity: Q(4), Price: USD(25), Amount: USD(-100)})

	s, err := NewSnapshot(l, NewMarketData(), ScopeIndividual, NewDate(2024, time.June, 30))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Holdings) != 1 {
		t.Fatalf("holdings = %d, want 1", len(s.Holdings))
	}
	h := s.Holdings[0]
	if !h.MarketValue.Equal(USD(100)) || !h.UnrealizedGain.IsZero() {
		t.Errorf("fallback valuation = %s, unrealized %s", h.MarketValue, h.UnrealizedGain)
	}
}
