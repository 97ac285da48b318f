package folio

import (
	"bytes"
	"testing"
	"time"
)

func TestPriceAsOfCarriesForward(t *testing.T) {
	m := NewMarketData()
	// out of order on purpose
	m.Add("AAPL", NewDate(2024, time.June, 7), USD(200))
	m.Add("AAPL", NewDate(2024, time.June, 3), USD(190))

	tests := []struct {
		on    Date
		want  Money
		known bool
	}{
		{NewDate(2024, time.June, 2), Money{}, false}, // before any price
		{NewDate(2024, time.June, 3), USD(190), true},
		{NewDate(2024, time.June, 5), USD(190), true}, // weekend gap carries forward
		{NewDate(2024, time.June, 7), USD(200), true},
		{NewDate(2024, time.June, 30), USD(200), true},
	}
	for _, tt := range tests {
		got, ok := m.PriceAsOf("AAPL", tt.on)
		if ok != tt.known {
			t.Errorf("PriceAsOf(%s) known = %v, want %v", tt.on, ok, tt.known)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("PriceAsOf(%s) = %s, want %s", tt.on, got, tt.want)
		}
	}
}

func TestAddOverwritesSameDay(t *testing.T) {
	m := NewMarketData()
	on := NewDate(2024, time.June, 3)
	m.Add("AAPL", on, USD(190))
	m.Add("AAPL", on, USD(191))
	got, _ := m.PriceAsOf("AAPL", on)
	if !got.Equal(USD(191)) {
		t.Errorf("price = %s, want later write %s", got, USD(191))
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestLastDate(t *testing.T) {
	m := NewMarketData()
	if !m.LastDate("AAPL").IsZero() {
		t.Error("LastDate of unknown symbol should be zero")
	}
	m.Add("AAPL", NewDate(2024, time.June, 3), USD(190))
	m.Add("AAPL", NewDate(2024, time.June, 7), USD(200))
	if got := m.LastDate("AAPL"); got != NewDate(2024, time.June, 7) {
		t.Errorf("LastDate = %s", got)
	}
}

func TestFillFromTransactions(t *testing.T) {
	l := testLedger()
	m := NewMarketData()
	// a provider price exists for the buy day, it must win over the trade price
	m.Add("AAPL", NewDate(2024, time.January, 15), USD(186))
	m.FillFromTransactions(l)

	got, _ := m.PriceAsOf("AAPL", NewDate(2024, time.January, 15))
	if !got.Equal(USD(186)) {
		t.Errorf("provider price overwritten: %s", got)
	}
	// the sell day had no provider price, the trade price fills it
	got, ok := m.PriceAsOf("WORK", NewDate(2024, time.February, 1))
	if !ok || !got.Equal(USD(25)) {
		t.Errorf("trade price fallback = %s known=%v", got, ok)
	}
}

func TestMarketDataRoundTrip(t *testing.T) {
	m := NewMarketData()
	m.Add("AAPL", NewDate(2024, time.June, 3), USD(190))
	m.Add("AAPL", NewDate(2024, time.June, 7), USD(200.25))
	m.Add("FID GROWTH CO POOL", NewDate(2024, time.June, 28), USD(42.17))

	var buf bytes.Buffer
	if err := EncodeMarketData(&buf, m); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeMarketData(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != m.Len() {
		t.Fatalf("round trip lost points: %d, want %d", back.Len(), m.Len())
	}
	got, ok := back.PriceAsOf("FID GROWTH CO POOL", NewDate(2024, time.June, 30))
	if !ok || !got.Equal(USD(42.17)) {
		t.Errorf("round trip price = %s known=%v", got, ok)
	}
}
