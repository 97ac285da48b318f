package quote

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"folio"
)

// EODHD quotes symbols through the eodhd.com end-of-day API. It requires an
// API key, read from the EODHD_API_KEY environment variable when not set
// explicitly, and serves as the fallback when yahoo refuses a symbol.
type EODHD struct {
	APIKey string
}

func (EODHD) Name() string { return "eodhd" }

func (p EODHD) key() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	return os.Getenv("EODHD_API_KEY")
}

func (p EODHD) History(ctx context.Context, symbol string, from, to folio.Date) ([]Quote, error) {
	key := p.key()
	if key == "" {
		return nil, fmt.Errorf("no EODHD API key, set EODHD_API_KEY")
	}

	// https://eodhd.com/api/eod/AAPL.US?api_token=demo&fmt=json
	// bounds are included in the response.
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s.US?fmt=json&api_token=%s&from=%s&to=%s",
		symbol, key, from, to)

	type info struct {
		Date  folio.Date      `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]info, 0)
	if err := jwget(ctx, newDailyCachingClient(), addr, nil, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch eodhd history for %q: %w", symbol, err)
	}

	quotes := make([]Quote, 0, len(content))
	for _, day := range content {
		quotes = append(quotes, Quote{Symbol: symbol, Date: day.Date, Close: day.Close})
	}
	return quotes, nil
}
