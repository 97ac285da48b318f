package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dashboard summary for every scope" }
func (*summaryCmd) Usage() string {
	return `fdash summary [-d <date>]

  Displays value, invested capital, gains and returns for every scope.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the summary.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
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

	// A corrupted scope must not hide the healthy ones, so each scope is
	// computed on its own and failures are reported together at the end.
	var metrics []*folio.Metrics
	var failures error
	for _, scope := range folio.Scopes() {
		m, err := folio.ComputeMetrics(ledger, market, scope, on)
		if err != nil {
			failures = errors.Join(failures, err)
			continue
		}
		metrics = append(metrics, m)
	}

	breakdown := folio.NetInvestedBreakdown(ledger, on)
	printMarkdown(renderer.SummaryMarkdown(on, metrics, breakdown))

	if failures != nil {
		fmt.Fprintf(os.Stderr, "Some scopes could not be computed:\n%v\n", failures)
		if len(metrics) == 0 {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
