// Command folio manages a transaction ledger and reviews the performance
// of the portfolio it describes.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ngaillard/portfolio/cmd"
)

func main() {
	// Shell completion, active only when invoked by the completion hook.
	completion().Complete("folio")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*.toml"),
			"ledger-file": predict.Files("*.jsonl"),
			"prices-file": predict.Files("*.jsonl"),
			"v":           predict.Nothing,
		},
	}
}
