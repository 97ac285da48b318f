package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"folio"
)

// Yahoo quotes symbols through the public chart endpoint. It needs no API key
// and covers US-listed stocks and ETFs, which is everything the brokerage
// exports hold.
type Yahoo struct{}

func (Yahoo) Name() string { return "yahoo" }

var epoch = folio.NewDate(1970, time.January, 1)

func unix(d folio.Date) int64 { return int64(d.DaysSince(epoch)) * 24 * 3600 }

func (Yahoo) History(ctx context.Context, symbol string, from, to folio.Date) ([]Quote, error) {
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		symbol, unix(from), unix(to.Add(1)))

	var jobj any
	// yahoo rejects the default Go user agent
	headers := map[string]string{"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)"}
	if err := jwget(ctx, newDailyCachingClient(), addr, headers, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch yahoo chart for %q: %w", symbol, err)
	}

	timestamps, err := jsonList(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, fmt.Errorf("cannot parse yahoo chart for %q: %w", symbol, err)
	}
	closes, err := jsonList(jobj, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, fmt.Errorf("cannot parse yahoo chart for %q: %w", symbol, err)
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("yahoo chart for %q has %d timestamps but %d closes", symbol, len(timestamps), len(closes))
	}

	var quotes []Quote
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			continue
		}
		// null closes show up on halted days
		close, ok := closes[i].(float64)
		if !ok {
			continue
		}
		day := time.Unix(int64(ts), 0).UTC()
		quotes = append(quotes, Quote{
			Symbol: symbol,
			Date:   folio.NewDate(day.Date()),
			Close:  decimal.NewFromFloat(close),
		})
	}
	return quotes, nil
}

// jsonList evaluates a jsonpath expression expected to yield a list.
func jsonList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", path, jval)
	}
	return jlist, nil
}
