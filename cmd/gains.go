package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	date  string
	scope string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "display realized and unrealized capital gains" }
func (*gainsCmd) Usage() string {
	return `fdash gains [-d <date>] [-s <scope>]

  Displays realized and unrealized gains per security, FIFO cost basis, and
  every individual sale.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the report.")
	f.StringVar(&c.scope, "s", string(folio.ScopeCombined), "Scope to report on.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	scope, err := parseScope(c.scope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

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
	market, err := DecodeMarketData(cfg, ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding price history: %v\n", err)
		return subcommands.ExitFailure
	}

	snapshot, err := folio.NewSnapshot(ledger, market, scope, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	var holdings []*folio.Holding
	for _, symbol := range ledger.Symbols(scope, on) {
		holding, err := folio.ReplayHolding(ledger, scope, symbol, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
			return subcommands.ExitFailure
		}
		holdings = append(holdings, holding)
	}

	printMarkdown(renderer.GainsMarkdown(snapshot, holdings))
	return subcommands.ExitSuccess
}
