// Package cmd implements the CLI application to manage a portfolio ledger
// and review its performance.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"github.com/ngaillard/portfolio"
)

// Commands lists every subcommand of the application, in display order.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&dividendCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&priceCmd{},
	&holdingCmd{},
	&historyCmd{},
	&reviewCmd{},
	&exportCmd{},
	&importCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var (
	configFile = flag.String("config", "folio.toml", "Path to the configuration file")
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format), overrides the configuration")
	pricesFile = flag.String("prices-file", "", "Path to the prices file (JSONL format), overrides the configuration")
	verbose    = flag.Bool("v", false, "Enable debug logging")
)

// Logger is the application logger, quiet by default.
var Logger = log.Logger{
	Level:  log.WarnLevel,
	Writer: &log.ConsoleWriter{ColorOutput: true, Writer: os.Stderr},
}

// Setup finalizes the global state after flag parsing: logging level and
// configuration file resolution.
func Setup() {
	if *verbose {
		Logger.Level = log.DebugLevel
	}
	if err := loadConfig(*configFile); err != nil {
		Logger.Fatal().Err(err).Str("file", *configFile).Msg("cannot read configuration")
	}
	if *ledgerFile != "" {
		config.LedgerFile = *ledgerFile
	}
	if *pricesFile != "" {
		config.PricesFile = *pricesFile
	}
	Logger.Debug().Str("ledger", config.LedgerFile).Str("prices", config.PricesFile).Msg("configured")
}

// DecodeLedger loads the application ledger. A missing file is an empty
// ledger, so the first transaction command works out of the box.
func DecodeLedger() (*portfolio.Ledger, error) {
	f, err := os.Open(config.LedgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Debug().Str("file", config.LedgerFile).Msg("no ledger file, starting empty")
		return portfolio.NewLedger()
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return portfolio.DecodeLedger(f)
}

// DecodePrices loads the application price table. A missing file is an
// empty table.
func DecodePrices() (*portfolio.PriceTable, error) {
	f, err := os.Open(config.PricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Debug().Str("file", config.PricesFile).Msg("no prices file, starting empty")
		return portfolio.NewPriceTable(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return portfolio.DecodePrices(f)
}

// NewEngine loads the ledger and the prices and wires them into an engine.
func NewEngine() (*portfolio.Engine, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	prices, err := DecodePrices()
	if err != nil {
		return nil, err
	}
	return portfolio.NewEngine(ledger, prices), nil
}

// AppendTransaction validates a transaction against the ledger and appends
// it to the ledger file.
func AppendTransaction(tx portfolio.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(config.LedgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", config.LedgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := portfolio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", config.LedgerFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully appended %s transaction to %s\n", tx.Type, config.LedgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal. When rendering fails the
// raw markdown is printed, so the report is never lost.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		Logger.Debug().Err(err).Msg("terminal rendering failed, printing raw markdown")
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

// resolveRange turns the common period and date flags into a date range
// ending on endDate.
func resolveRange(period, start, end string) (portfolio.Range, error) {
	endDate := portfolio.Today()
	if end != "" {
		var err error
		if endDate, err = portfolio.ParseDate(end); err != nil {
			return portfolio.Range{}, err
		}
	}
	if start != "" {
		startDate, err := portfolio.ParseDate(start)
		if err != nil {
			return portfolio.Range{}, err
		}
		return portfolio.NewRange(startDate, endDate), nil
	}
	p, err := portfolio.ParsePeriod(period)
	if err != nil {
		return portfolio.Range{}, err
	}
	return p.Range(endDate), nil
}
