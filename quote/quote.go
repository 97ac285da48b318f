// Package quote fetches end-of-day prices from public quote APIs. Responses
// are cached on disk for a day, so re-running the dashboard does not hammer
// the providers.
package quote

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"folio"
)

// A Quote is one end-of-day price observation from a provider.
type Quote struct {
	Symbol string
	Date   folio.Date
	Close  decimal.Decimal
}

// A Provider fetches the daily closing price history of a symbol.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// History returns the closes of a symbol between from and to, both
	// included. Symbols unknown to the provider are an error.
	History(ctx context.Context, symbol string, from, to folio.Date) ([]Quote, error)
}

// Update fetches the history of each symbol from the first provider that
// answers and records it in the market data. A symbol no provider can quote
// is logged and left alone: its last known price carries forward, which keeps
// unlisted 401k funds from breaking the fetch.
func Update(ctx context.Context, providers []Provider, market *folio.MarketData, symbols []string, window folio.Range) error {
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		quotes, err := fetchOne(ctx, providers, symbol, window)
		if err != nil {
			log.Printf("no quotes for %s, keeping last known price of %s: %v", symbol, market.LastDate(symbol), err)
			continue
		}
		for _, q := range quotes {
			market.Add(symbol, q.Date, folio.USD(q.Close))
		}
		log.Printf("fetched %d quotes for %s", len(quotes), symbol)
	}
	return nil
}

func fetchOne(ctx context.Context, providers []Provider, symbol string, window folio.Range) ([]Quote, error) {
	var lastErr error
	for _, p := range providers {
		quotes, err := p.History(ctx, symbol, window.From, window.To)
		if err != nil {
			log.Printf("%s cannot quote %s: %v", p.Name(), symbol, err)
			lastErr = err
			continue
		}
		if len(quotes) > 0 {
			return quotes, nil
		}
	}
	return nil, lastErr
}
