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

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	date  string
	scope string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the open positions of a scope" }
func (*holdingCmd) Usage() string {
	return `fdash holding [-d <date>] [-s <scope>]

  Displays every open position with its market value and unrealized gain.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the report.")
	f.StringVar(&c.scope, "s", string(folio.ScopeCombined), "Scope to report on.")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.HoldingMarkdown(snapshot))
	return subcommands.ExitSuccess
}
