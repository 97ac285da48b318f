package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "folio.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", c.Currency)
	}
	if c.AllocationMinShare != 0.02 {
		t.Errorf("AllocationMinShare = %v, want 0.02", c.AllocationMinShare)
	}
	if filepath.Base(c.Ledger) != "ledger.jsonl" {
		t.Errorf("Ledger = %q", c.Ledger)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
currency: USD
ledger: data/ledger.jsonl
symbol_map:
  SPYM: SPLG
manual_prices:
  "FID GROWTH CO POOL":
    - {date: 2024-06-28, price: 42.17}
sectors:
  AAPL: Technology
allocation_min_share: 0.05
`
	path := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.MapSymbol("SPYM") != "SPLG" {
		t.Errorf("MapSymbol(SPYM) = %q, want SPLG", c.MapSymbol("SPYM"))
	}
	if c.MapSymbol("AAPL") != "AAPL" {
		t.Errorf("MapSymbol(AAPL) = %q, want identity", c.MapSymbol("AAPL"))
	}
	if c.AllocationMinShare != 0.05 {
		t.Errorf("AllocationMinShare = %v", c.AllocationMinShare)
	}
	if c.Sectors["AAPL"] != "Technology" {
		t.Errorf("Sectors = %v", c.Sectors)
	}
	// relative paths resolve against the config file
	if c.Ledger != filepath.Join(dir, "data/ledger.jsonl") {
		t.Errorf("Ledger = %q", c.Ledger)
	}
	// prices defaulted and still resolved
	if c.Prices != filepath.Join(dir, "prices.jsonl") {
		t.Errorf("Prices = %q", c.Prices)
	}
}

func TestApplyManualPrices(t *testing.T) {
	c := DefaultConfig()
	c.ManualPrices = map[string][]ManualPrice{
		"FID GROWTH CO POOL": {{Date: NewDate(2024, time.June, 28), Price: 42.17}},
	}

	m := NewMarketData()
	m.Add("FID GROWTH CO POOL", NewDate(2024, time.June, 28), USD(40)) // stale value loses
	c.ApplyManualPrices(m)

	got, ok := m.PriceAsOf("FID GROWTH CO POOL", NewDate(2024, time.June, 30))
	if !ok || !got.Equal(USD(42.17)) {
		t.Errorf("price = %s known=%v, want manual 42.17", got, ok)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("currency: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}
