package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ngaillard/portfolio"
)

// txFlags holds the flags shared by all transaction commands.
type txFlags struct {
	date    string
	account string
	memo    string
}

func (t *txFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	f.StringVar(&t.account, "a", "", "Account name (defaults to the configured account)")
	f.StringVar(&t.memo, "memo", "", "Optional note attached to the transaction")
}

func (t *txFlags) resolve() (portfolio.Date, string, error) {
	on := portfolio.Today()
	if t.date != "" {
		var err error
		if on, err = portfolio.ParseDate(t.date); err != nil {
			return portfolio.Date{}, "", err
		}
	}
	account := t.account
	if account == "" {
		account = config.Account
	}
	return on, account, nil
}

// money builds a Money in the configured reporting currency.
func money(v float64) portfolio.Money { return portfolio.M(v, config.Currency) }

type buyCmd struct {
	txFlags
	symbol   string
	quantity float64
	price    float64
	fee      float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `folio buy -s <symbol> -q <quantity> -p <price> [-fee <fee>] [-d <date>] [-a <account>]

  Records the purchase of a quantity of a security at a per share price,
  plus an optional transaction fee.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.setFlags(f)
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares bought")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "fee", 0, "Transaction fee")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, account, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := portfolio.NewBuy(on, account, c.symbol, portfolio.Q(c.quantity), money(c.price), money(c.fee))
	tx.Memo = c.memo
	return AppendTransaction(tx)
}

type sellCmd struct {
	txFlags
	symbol   string
	quantity float64
	price    float64
	fee      float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `folio sell -s <symbol> -q <quantity> -p <price> [-fee <fee>] [-d <date>] [-a <account>]

  Records the sale of a quantity of a security at a per share price, minus
  an optional transaction fee. Selling more than the account holds is
  rejected when the ledger is replayed.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.setFlags(f)
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares sold")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.fee, "fee", 0, "Transaction fee")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, account, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := portfolio.NewSell(on, account, c.symbol, portfolio.Q(c.quantity), money(c.price), money(c.fee))
	tx.Memo = c.memo
	return AppendTransaction(tx)
}

type dividendCmd struct {
	txFlags
	symbol   string
	amount   float64
	quantity float64
	price    float64
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `folio dividend -s <symbol> (-amount <total> | -q <shares> -p <per-share>) [-d <date>] [-a <account>]

  Records a dividend paid by a security, either as a lump sum or as a per
  share payout over a number of shares.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.setFlags(f)
	f.StringVar(&c.symbol, "s", "", "Security symbol")
	f.Float64Var(&c.amount, "amount", 0, "Total dividend amount")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares paid (per share form)")
	f.Float64Var(&c.price, "p", 0, "Dividend per share (per share form)")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, account, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var tx portfolio.Transaction
	if c.amount != 0 {
		tx = portfolio.NewDividend(on, account, c.symbol, money(c.amount))
	} else {
		tx = portfolio.NewDividendPerShare(on, account, c.symbol, portfolio.Q(c.quantity), money(c.price))
	}
	tx.Memo = c.memo
	return AppendTransaction(tx)
}

type depositCmd struct {
	txFlags
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash contribution to an account" }
func (*depositCmd) Usage() string {
	return `folio deposit -amount <amount> [-d <date>] [-a <account>]

  Records an external cash contribution to the account.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.setFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "Amount deposited")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, account, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := portfolio.NewDeposit(on, account, money(c.amount))
	tx.Memo = c.memo
	return AppendTransaction(tx)
}

type withdrawCmd struct {
	txFlags
	amount float64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from an account" }
func (*withdrawCmd) Usage() string {
	return `folio withdraw -amount <amount> [-d <date>] [-a <account>]

  Records an external cash withdrawal from the account.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.setFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "Amount withdrawn")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, account, err := c.resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	tx := portfolio.NewWithdraw(on, account, money(c.amount))
	tx.Memo = c.memo
	return AppendTransaction(tx)
}
