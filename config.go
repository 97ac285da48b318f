package folio

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the user-editable settings of the dashboard: where the data
// files live, how symbols are cleaned up, and prices for funds no provider
// quotes (401k plan funds have no public ticker).
type Config struct {
	// Currency is the reporting currency. Defaults to USD.
	Currency string `yaml:"currency"`

	// Ledger and Prices are the paths of the JSONL data files, relative to
	// the config file when not absolute.
	Ledger string `yaml:"ledger"`
	Prices string `yaml:"prices"`

	// SymbolMap renames symbols at import time, e.g. a fund that changed
	// ticker so that its history stays in one series.
	SymbolMap map[string]string `yaml:"symbol_map"`

	// ManualPrices are price observations for unquoted symbols, layered on
	// top of provider prices.
	ManualPrices map[string][]ManualPrice `yaml:"manual_prices"`

	// Sectors maps symbols to sector labels for the allocation breakdown.
	Sectors map[string]string `yaml:"sectors"`

	// AllocationMinShare is the fraction below which a position is folded
	// into the "Other" allocation bucket. Defaults to 0.02.
	AllocationMinShare float64 `yaml:"allocation_min_share"`
}

// ManualPrice is one hand-maintained price observation.
type ManualPrice struct {
	Date  Date    `yaml:"date"`
	Price float64 `yaml:"price"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Currency:           "USD",
		Ledger:             "ledger.jsonl",
		Prices:             "prices.jsonl",
		AllocationMinShare: 0.02,
	}
}

// LoadConfig reads a YAML config file and fills in defaults for anything
// omitted. A missing file is not an error: the defaults apply.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.Ledger == "" {
		c.Ledger = "ledger.jsonl"
	}
	if c.Prices == "" {
		c.Prices = "prices.jsonl"
	}
	if c.AllocationMinShare <= 0 {
		c.AllocationMinShare = 0.02
	}
	dir := filepath.Dir(path)
	if !filepath.IsAbs(c.Ledger) {
		c.Ledger = filepath.Join(dir, c.Ledger)
	}
	if !filepath.IsAbs(c.Prices) {
		c.Prices = filepath.Join(dir, c.Prices)
	}
	return c, nil
}

// MapSymbol applies the configured symbol renames, returning the symbol
// unchanged when no mapping exists.
func (c *Config) MapSymbol(symbol string) string {
	if mapped, ok := c.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// ApplyManualPrices layers the hand-maintained prices over the market data.
// Manual prices win over anything already recorded for the same day.
func (c *Config) ApplyManualPrices(market *MarketData) {
	for symbol, points := range c.ManualPrices {
		for _, p := range points {
			market.Add(symbol, p.Date, M(p.Price, c.Currency))
		}
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for dates written as ISO strings.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
