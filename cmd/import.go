package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"folio"
	"folio/fidelity"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	format string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import Fidelity CSV exports into the ledger" }
func (*importCmd) Usage() string {
	return `fdash import -format <brokerage|401k> <file.csv>...

  Reads Fidelity CSV exports, normalizes their rows and appends them to the
  ledger. Duplicate rows from overlapping exports are dropped. See
  'fdash topic importing' for details.

Usage Examples:
# Import the brokerage history export.
$ fdash import -format brokerage Accounts_History.csv

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "brokerage", "Export flavor: brokerage or 401k.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no export file given")
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

	imported := 0
	for _, name := range f.Args() {
		txs, err := c.importFile(name, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", name, err)
			return subcommands.ExitFailure
		}
		// drop rows already in the ledger, overlapping exports are common
		var fresh []folio.Transaction
		for _, tx := range txs {
			if !contains(ledger, tx) {
				fresh = append(fresh, tx)
			}
		}
		ledger.Append(fresh...)
		imported += len(fresh)
		fmt.Printf("Imported %d transactions from %s (%d duplicates skipped)\n",
			len(fresh), name, len(txs)-len(fresh))
	}

	if err := SaveLedger(cfg, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Ledger now holds %d transactions (%d new)\n", ledger.Len(), imported)
	return subcommands.ExitSuccess
}

func (c *importCmd) importFile(name string, cfg *folio.Config) ([]folio.Transaction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch c.format {
	case "brokerage":
		return fidelity.ImportBrokerage(f, cfg.MapSymbol)
	case "401k":
		return fidelity.Import401k(f, cfg.MapSymbol)
	default:
		return nil, fmt.Errorf("unknown format %q, want brokerage or 401k", c.format)
	}
}

func contains(ledger *folio.Ledger, tx folio.Transaction) bool {
	for _, existing := range ledger.Transactions() {
		if existing.Equal(tx) {
			return true
		}
	}
	return false
}
