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

// flowsCmd holds the flags for the 'flows' subcommand.
type flowsCmd struct {
	scope string
}

func (*flowsCmd) Name() string     { return "flows" }
func (*flowsCmd) Synopsis() string { return "display the external cash flows of a scope" }
func (*flowsCmd) Usage() string {
	return `fdash flows [-s <scope>]

  Displays every external cash flow of a scope and where the invested
  capital came from.
`
}

func (c *flowsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scope, "s", string(folio.ScopeCombined), "Scope to report on.")
}

func (c *flowsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	window := folio.NewRange(ledger.OldestTransactionDate(), folio.Today())
	flows := folio.ExtractCashFlows(ledger, scope, window)
	breakdown := folio.NetInvestedBreakdown(ledger, folio.Today())

	printMarkdown(renderer.FlowsMarkdown(scope, flows, breakdown))
	return subcommands.ExitSuccess
}
