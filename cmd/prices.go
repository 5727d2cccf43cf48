package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ngaillard/portfolio"
)

type priceCmd struct {
	symbol string
	date   string
	price  float64
	list   bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record a security price, or list known prices" }
func (*priceCmd) Usage() string {
	return `folio price -s <symbol> -p <price> [-d <date>]
folio price -list

  Records an observed price for a security. Valuations use the most recent
  price on or before the requested date.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.StringVar(&c.date, "d", "", "Observation date (YYYY-MM-DD, defaults to today)")
	f.Float64Var(&c.price, "p", 0, "Observed price per share")
	f.BoolVar(&c.list, "list", false, "List the latest known price of every symbol")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.list {
		for symbol := range prices.Symbols() {
			latest, _ := prices.Latest(symbol)
			fmt.Printf("%s\t%s\t%s\n", symbol, latest.On, latest.Price)
		}
		return subcommands.ExitSuccess
	}

	if c.symbol == "" || c.price <= 0 {
		fmt.Fprintln(os.Stderr, "price requires a symbol and a positive price")
		return subcommands.ExitUsageError
	}
	on := portfolio.Today()
	if c.date != "" {
		if on, err = portfolio.ParseDate(c.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	prices.Add(c.symbol, on, money(c.price))

	out, err := os.Create(config.PricesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening prices file %q: %v\n", config.PricesFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := portfolio.EncodePrices(out, prices); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing prices file %q: %v\n", config.PricesFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s at %s on %s\n", c.symbol, money(c.price), on)
	return subcommands.ExitSuccess
}
