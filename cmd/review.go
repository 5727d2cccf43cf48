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

type reviewCmd struct {
	period  string
	start   string
	date    string
	account string
	step    string
}

func (*reviewCmd) Name() string { return "review" }
func (*reviewCmd) Synopsis() string {
	return "display a performance review of an account over a period"
}
func (*reviewCmd) Usage() string {
	return `folio review [-p <period> | -s <start_date>] [-d <end_date>] [-a <account>] [-step <period>]

  Computes the account's returns (CAGR, money and time weighted), dividend
  income and risk statistics over a date range.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "year", "Predefined period for the review (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date for a custom range, overrides -p")
	f.StringVar(&c.date, "d", "", "End date of the review (defaults to today)")
	f.StringVar(&c.account, "a", "", "Account name (defaults to the configured account)")
	f.StringVar(&c.step, "step", "monthly", "Sampling period for the risk statistics")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, err := NewEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	r, err := resolveRange(c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	step, err := portfolio.ParsePeriod(c.step)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	account := c.account
	if account == "" {
		account = config.Account
	}

	review, err := renderer.NewReview(engine, account, r, step, config.RiskFree)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ReviewMarkdown(review))
	return subcommands.ExitSuccess
}
