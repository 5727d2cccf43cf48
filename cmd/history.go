package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ngaillard/portfolio"
	"github.com/ngaillard/portfolio/renderer"
)

type historyCmd struct {
	period  string
	start   string
	date    string
	account string
	step    string
	chart   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the value of an account over time" }
func (*historyCmd) Usage() string {
	return `folio history [-p <period> | -s <start_date>] [-d <end_date>] [-a <account>] [-step <period>] [-chart <file.png>]

  Samples the account value over a date range and prints it as a table.
  With -chart, also writes a PNG line chart of value and cost basis.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "year", "Predefined period for the history (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "Start date for a custom range, overrides -p")
	f.StringVar(&c.date, "d", "", "End date of the history (defaults to today)")
	f.StringVar(&c.account, "a", "", "Account name (defaults to the configured account)")
	f.StringVar(&c.step, "step", "monthly", "Sampling period between points")
	f.StringVar(&c.chart, "chart", "", "Write a PNG chart of the series to this file")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	points, err := engine.ValueOverTime(account, r, step)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Value of %s\n\n", account)
	fmt.Fprintln(&b, "| Date | Market Value | Cost Basis | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			p.On, p.TotalValue, p.CostBasis, p.UnrealizedGain.SignedString())
		if len(p.MissingSymbols) > 0 {
			Logger.Warn().Str("date", p.On.String()).Strs("symbols", p.MissingSymbols).
				Msg("positions excluded from value for lack of a price")
		}
	}
	printMarkdown(b.String())

	if c.chart != "" {
		png, err := renderer.ValueChartPNG(account, points)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.chart, png, 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote chart to %s\n", c.chart)
	}
	return subcommands.ExitSuccess
}
