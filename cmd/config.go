package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application settings read from the TOML configuration
// file. Every field has a working default, so the file is optional.
type Config struct {
	// Currency is the reporting currency code used when transactions do
	// not carry one.
	Currency string `toml:"currency"`
	// RiskFree is the annual risk free rate used by the Sharpe ratio.
	RiskFree float64 `toml:"risk-free"`
	// Account is the default account for commands that take one.
	Account string `toml:"account"`
	// LedgerFile is the path of the JSONL transaction ledger.
	LedgerFile string `toml:"ledger-file"`
	// PricesFile is the path of the JSONL price table.
	PricesFile string `toml:"prices-file"`
}

var config = Config{
	Currency:   "USD",
	RiskFree:   0.02,
	Account:    "main",
	LedgerFile: "transactions.jsonl",
	PricesFile: "prices.jsonl",
}

// loadConfig overlays the TOML file on the defaults. A missing file keeps
// the defaults.
func loadConfig(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, &config)
}
