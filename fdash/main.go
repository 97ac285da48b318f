package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"folio/cmd"
)

func main() {
	// API keys (EODHD_API_KEY) live in a .env next to the data.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it returns immediately unless the shell
// is asking for completions.
func completion() {
	scopes := predict.Set{"individual", "espp", "401k", "taxable", "combined"}
	report := map[string]complete.Predictor{"d": predict.Nothing, "s": scopes}

	root := &complete.Command{
		Sub: map[string]*complete.Command{
			"import": {
				Flags: map[string]complete.Predictor{"format": predict.Set{"brokerage", "401k"}},
				Args:  predict.Files("*.csv"),
			},
			"fetch":   {Flags: map[string]complete.Predictor{"from": predict.Nothing}},
			"summary": {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"holding": {Flags: report},
			"gains":   {Flags: report},
			"allocation": {
				Flags: map[string]complete.Predictor{
					"d": predict.Nothing, "s": scopes,
					"by": predict.Set{"symbol", "sector"},
				},
			},
			"flows": {Flags: map[string]complete.Predictor{"s": scopes}},
			"topic": {Args: predict.Set{"importing", "metrics", "pricing", "allocation", "config", "readme"}},
		},
		Flags: map[string]complete.Predictor{"config": predict.Files("*.yaml")},
	}
	root.Complete("fdash")
}
