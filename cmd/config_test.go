package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ngaillard/portfolio"
)

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	defer func(c Config) { config = c }(config)

	file := filepath.Join(t.TempDir(), "folio.toml")
	content := `
currency = "EUR"
risk-free = 0.03
ledger-file = "/tmp/ledger.jsonl"
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := loadConfig(file); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if config.Currency != "EUR" || config.RiskFree != 0.03 {
		t.Errorf("config = %+v", config)
	}
	if config.LedgerFile != "/tmp/ledger.jsonl" {
		t.Errorf("ledger file = %q", config.LedgerFile)
	}
	// Unset keys keep their defaults.
	if config.Account != "main" || config.PricesFile != "prices.jsonl" {
		t.Errorf("defaults lost: %+v", config)
	}
}

func TestLoadConfig_MissingFileKeepsDefaults(t *testing.T) {
	defer func(c Config) { config = c }(config)
	if err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if config.Currency != "USD" {
		t.Errorf("config = %+v", config)
	}
}

func TestResolveRange(t *testing.T) {
	r, err := resolveRange("", "2025-01-01", "2025-03-01")
	if err != nil {
		t.Fatalf("resolveRange() error = %v", err)
	}
	want := portfolio.NewRange(portfolio.MustParseDate("2025-01-01"), portfolio.MustParseDate("2025-03-01"))
	if r != want {
		t.Errorf("resolveRange() = %+v, want %+v", r, want)
	}

	r, err = resolveRange("month", "", "2025-02-12")
	if err != nil {
		t.Fatalf("resolveRange() error = %v", err)
	}
	if r.From != portfolio.MustParseDate("2025-02-01") || r.To != portfolio.MustParseDate("2025-02-28") {
		t.Errorf("resolveRange(month) = %+v", r)
	}

	if _, err := resolveRange("fortnight", "", ""); err == nil {
		t.Error("resolveRange() accepted an unknown period")
	}
}
