package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ngaillard/portfolio"
	"github.com/ngaillard/portfolio/renderer"
)

type holdingCmd struct {
	date    string
	account string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the positions and value of an account" }
func (*holdingCmd) Usage() string {
	return `folio holding [-d <date>] [-a <account>]

  Displays the account's open positions on a date, priced with the most
  recent known prices, with cost basis and unrealized gains.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&c.account, "a", "", "Account name (defaults to the configured account)")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, err := NewEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	on := portfolio.Today()
	if c.date != "" {
		if on, err = portfolio.ParseDate(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	account := c.account
	if account == "" {
		account = config.Account
	}

	h, err := renderer.NewHolding(engine, account, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingMarkdown(h))
	return subcommands.ExitSuccess
}
