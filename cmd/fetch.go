package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/quote"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	from string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch quotes for every symbol in the ledger" }
func (*fetchCmd) Usage() string {
	return `fdash fetch [-from <date>]

  Fetches daily closing prices for every symbol held anywhere in the ledger
  and stores them in the price history. Symbols no provider can quote keep
  their last known price. See 'fdash topic pricing'.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Fetch from this date. Defaults to the oldest transaction.")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to fetch: the ledger is empty.")
		return subcommands.ExitSuccess
	}
	market, err := DecodeMarketData(cfg, ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding price history: %v\n", err)
		return subcommands.ExitFailure
	}

	from := ledger.OldestTransactionDate()
	if c.from != "" {
		from, err = folio.ParseDate(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	providers := []quote.Provider{quote.Yahoo{}, quote.EODHD{}}
	window := folio.NewRange(from, folio.Today())
	symbols := ledger.Symbols(folio.ScopeCombined, folio.Today())
	if err := quote.Update(ctx, providers, market, symbols, window); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := SaveMarketData(cfg, market); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving price history: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Price history now holds %d points for %d symbols\n", market.Len(), len(market.Symbols()))
	return subcommands.ExitSuccess
}
