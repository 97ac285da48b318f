package quote

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"folio"
)

// fakeProvider serves canned quotes, or an error for symbols it doesn't know.
type fakeProvider struct {
	name   string
	quotes map[string][]Quote
}

func (p fakeProvider) Name() string { return p.name }

func (p fakeProvider) History(_ context.Context, symbol string, from, to folio.Date) ([]Quote, error) {
	quotes, ok := p.quotes[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return quotes, nil
}

func TestUpdateRecordsQuotes(t *testing.T) {
	on := folio.NewDate(2024, time.June, 28)
	provider := fakeProvider{name: "fake", quotes: map[string][]Quote{
		"AAPL": {{Symbol: "AAPL", Date: on, Close: decimal.NewFromInt(210)}},
	}}

	market := folio.NewMarketData()
	window := folio.Range{From: on, To: on}
	err := Update(context.Background(), []Provider{provider}, market, []string{"AAPL"}, window)
	if err != nil {
		t.Fatal(err)
	}

	price, ok := market.PriceAsOf("AAPL", on)
	if !ok || !price.Equal(folio.USD(210)) {
		t.Errorf("price = %s known=%v, want 210", price, ok)
	}
}

func TestUpdateFallsThroughProviders(t *testing.T) {
	on := folio.NewDate(2024, time.June, 28)
	empty := fakeProvider{name: "empty"}
	second := fakeProvider{name: "second", quotes: map[string][]Quote{
		"AAPL": {{Symbol: "AAPL", Date: on, Close: decimal.NewFromInt(210)}},
	}}

	market := folio.NewMarketData()
	window := folio.Range{From: on, To: on}
	err := Update(context.Background(), []Provider{empty, second}, market, []string{"AAPL"}, window)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := market.PriceAsOf("AAPL", on); !ok {
		t.Error("second provider was not consulted")
	}
}

func TestUpdateKeepsLastKnownPrice(t *testing.T) {
	// a symbol no provider quotes must not break the fetch nor lose its
	// last known price
	known := folio.NewDate(2024, time.June, 3)
	market := folio.NewMarketData()
	market.Add("FID GROWTH CO POOL", known, folio.USD(42))

	window := folio.Range{From: known, To: folio.NewDate(2024, time.June, 28)}
	err := Update(context.Background(), []Provider{fakeProvider{name: "empty"}}, market,
		[]string{"FID GROWTH CO POOL"}, window)
	if err != nil {
		t.Fatal(err)
	}

	price, ok := market.PriceAsOf("FID GROWTH CO POOL", window.To)
	if !ok || !price.Equal(folio.USD(42)) {
		t.Errorf("price = %s known=%v, want the last known 42", price, ok)
	}
}

func TestUpdateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Update(ctx, nil, folio.NewMarketData(), []string{"AAPL"}, folio.Range{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestJSONListParsesYahooChart(t *testing.T) {
	const payload = `{"chart":{"result":[{"timestamp":[1719532800,1719619200],
		"indicators":{"quote":[{"close":[210.5,null]}]}}]}}`
	var jobj any
	if err := json.Unmarshal([]byte(payload), &jobj); err != nil {
		t.Fatal(err)
	}

	timestamps, err := jsonList(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		t.Fatal(err)
	}
	if len(timestamps) != 2 {
		t.Fatalf("timestamps = %v", timestamps)
	}
	closes, err := jsonList(jobj, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := closes[0].(float64); !ok || v != 210.5 {
		t.Errorf("close[0] = %v", closes[0])
	}
	// halted days come through as null and must stay non-float
	if _, ok := closes[1].(float64); ok {
		t.Error("null close parsed as a float")
	}

	if _, err := jsonList(jobj, "$.chart.result[0].missing"); err == nil {
		t.Error("expected an error for a missing path")
	}
}
