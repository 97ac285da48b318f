// Package cmd implements the CLI application to manage the dashboard.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"

	"folio"
)

// Commands lists all subcommands.
// A main package will iterate over it to Register() each one.
var Commands = []subcommands.Command{
	&importCmd{},
	&fetchCmd{},
	&summaryCmd{},
	&holdingCmd{},
	&gainsCmd{},
	&allocationCmd{},
	&flowsCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "folio.yaml", "Path to the dashboard config file (YAML)")

// LoadConfig loads the app config, falling back on defaults when the file is
// absent.
func LoadConfig() (*folio.Config, error) {
	return folio.LoadConfig(*configFile)
}

// DecodeLedger reads the app ledger file. A missing file yields an empty
// ledger, so every command works before the first import.
func DecodeLedger(cfg *folio.Config) (*folio.Ledger, error) {
	f, err := os.Open(cfg.Ledger)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger does not exist yet, starting empty")
		return folio.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// SaveLedger writes the whole ledger back to the app ledger file.
func SaveLedger(cfg *folio.Config, ledger *folio.Ledger) error {
	f, err := os.Create(cfg.Ledger)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeLedger(f, ledger)
}

// DecodeMarketData reads the app price history and layers the other price
// sources over it: transaction prices fill the gaps, manual config prices win
// over everything.
func DecodeMarketData(cfg *folio.Config, ledger *folio.Ledger) (*folio.MarketData, error) {
	market := folio.NewMarketData()
	f, err := os.Open(cfg.Prices)
	if err == nil {
		defer f.Close()
		market, err = folio.DecodeMarketData(f)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	market.FillFromTransactions(ledger)
	cfg.ApplyManualPrices(market)
	return market, nil
}

// SaveMarketData writes the price history back to the app prices file.
func SaveMarketData(cfg *folio.Config, market *folio.MarketData) error {
	f, err := os.Create(cfg.Prices)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeMarketData(f, market)
}

// parseScope parses the -s flag common to the reporting commands.
func parseScope(s string) (folio.Scope, error) {
	scope, err := folio.ParseScope(s)
	if err != nil {
		return "", fmt.Errorf("%w (want one of individual, espp, 401k, taxable, combined)", err)
	}
	return scope, nil
}
