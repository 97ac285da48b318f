package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

// MarketData holds the known closing prices of every symbol, one sorted series
// per symbol. Prices come from three sources with decreasing priority: quote
// providers, manual prices from the config (for unlisted 401k funds), and
// transaction prices as a fallback for days where nothing else is known.
type MarketData struct {
	series map[string][]pricePoint
}

type pricePoint struct {
	Date  Date
	Price Money
}

// NewMarketData creates an empty market data set.
func NewMarketData() *MarketData {
	return &MarketData{series: make(map[string][]pricePoint)}
}

// Add records the price of a symbol on a date. A later Add for the same
// symbol and date overwrites the earlier one, so callers layer sources from
// least to most trusted.
func (m *MarketData) Add(symbol string, on Date, price Money) {
	points := m.series[symbol]
	i := sort.Search(len(points), func(i int) bool { return !points[i].Date.Before(on) })
	if i < len(points) && points[i].Date == on {
		points[i].Price = price
		return
	}
	points = append(points, pricePoint{})
	copy(points[i+1:], points[i:])
	points[i] = pricePoint{Date: on, Price: price}
	m.series[symbol] = points
}

// PriceAsOf returns the last known price of the symbol on or before the given
// date. Markets close on weekends and holidays, so the price carries forward
// until a newer one is known. The second return value is false when no price
// at all is known by that date.
func (m *MarketData) PriceAsOf(symbol string, on Date) (Money, bool) {
	points := m.series[symbol]
	i := sort.Search(len(points), func(i int) bool { return points[i].Date.After(on) })
	if i == 0 {
		return Money{}, false
	}
	return points[i-1].Price, true
}

// LastDate returns the date of the newest known price for the symbol, or the
// zero date when none is known.
func (m *MarketData) LastDate(symbol string) Date {
	points := m.series[symbol]
	if len(points) == 0 {
		return Date{}
	}
	return points[len(points)-1].Date
}

// Symbols returns the symbols with at least one known price, sorted.
func (m *MarketData) Symbols() []string {
	symbols := make([]string, 0, len(m.series))
	for symbol := range m.series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the total number of price points across all symbols.
func (m *MarketData) Len() int {
	n := 0
	for _, points := range m.series {
		n += len(points)
	}
	return n
}

// FillFromTransactions backfills prices from the ledger's own trades, for
// symbols and days where no provider price is known. A buy at $10 is a $10
// price observation. Provider prices added afterwards overwrite these.
func (m *MarketData) FillFromTransactions(l *Ledger) {
	for _, tx := range l.Transactions() {
		if tx.Symbol == "" || tx.Quantity.IsZero() {
			continue
		}
		price := tx.UnitCost()
		if price.IsZero() {
			continue
		}
		if _, ok := m.exact(tx.Symbol, tx.Date); ok {
			continue
		}
		m.Add(tx.Symbol, tx.Date, price)
	}
}

// exact returns the price recorded for exactly that date, without carry-forward.
func (m *MarketData) exact(symbol string, on Date) (Money, bool) {
	points := m.series[symbol]
	i := sort.Search(len(points), func(i int) bool { return !points[i].Date.Before(on) })
	if i < len(points) && points[i].Date == on {
		return points[i].Price, true
	}
	return Money{}, false
}

// jprice is the JSONL wire form of one price point.
type jprice struct {
	Symbol   string          `json:"symbol"`
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
}

// EncodeMarketData writes the price history in JSONL format, one point per
// line, sorted by symbol then date.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	for _, symbol := range m.Symbols() {
		for _, p := range m.series[symbol] {
			jp := jprice{Symbol: symbol, Date: p.Date, Price: p.Price.Decimal(), Currency: p.Price.Currency()}
			data, err := json.Marshal(jp)
			if err != nil {
				return fmt.Errorf("cannot marshal price of %s on %s: %w", symbol, p.Date, err)
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return fmt.Errorf("cannot write price history: %w", err)
			}
		}
	}
	return nil
}

// DecodeMarketData reads a JSONL price history stream.
func DecodeMarketData(r io.Reader) (*MarketData, error) {
	m := NewMarketData()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var jp jprice
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("could not decode price line %q: %w", string(line), err)
		}
		currency := jp.Currency
		if currency == "" {
			currency = "USD"
		}
		m.Add(jp.Symbol, jp.Date, M(jp.Price, currency))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read price history: %w", err)
	}
	return m, nil
}
