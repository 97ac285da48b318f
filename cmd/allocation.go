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

// allocationCmd holds the flags for the 'allocation' subcommand.
type allocationCmd struct {
	date  string
	scope string
	by    string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the allocation breakdown of a scope" }
func (*allocationCmd) Usage() string {
	return `fdash allocation [-d <date>] [-s <scope>] [-by <symbol|sector>]

  Breaks the portfolio value into buckets. Small positions fold into "Other".
  See 'fdash topic allocation'.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the report.")
	f.StringVar(&c.scope, "s", string(folio.ScopeCombined), "Scope to report on.")
	f.StringVar(&c.by, "by", "symbol", "Group by symbol or sector.")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var a *folio.Allocation
	var title string
	switch c.by {
	case "symbol":
		a, title = folio.AllocateBySymbol(snapshot, cfg.AllocationMinShare), "Symbol"
	case "sector":
		a, title = folio.AllocateBySector(snapshot, cfg.Sectors, cfg.AllocationMinShare), "Sector"
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown grouping %q, want symbol or sector\n", c.by)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.AllocationMarkdown(title, a))
	return subcommands.ExitSuccess
}
