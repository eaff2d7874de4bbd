package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
	"github.com/oklog/ulid/v2"
)

// recordFlow validates and appends a deposit or withdrawal to the journal.
func recordFlow(t stonkstats.FlowType, date string, amount float64) subcommands.ExitStatus {
	on, err := stonkstats.ParseDate(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: amount must be positive.")
		return subcommands.ExitUsageError
	}

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	flow := stonkstats.CashFlow{
		ID:     ulid.Make().String(),
		On:     on,
		Type:   t,
		Amount: stonkstats.M(amount, settings.Currency),
	}
	ledger.AppendFlow(flow)
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s of %s on %s\n", t, flow.Amount, on)
	return subcommands.ExitSuccess
}

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct {
	date   string
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit into the account" }
func (*depositCmd) Usage() string {
	return `stonk deposit -amount <amount> [-d <date>]

  Records money moved into the trading account.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stonkstats.Today().String(), "Date of the deposit.")
	f.Float64Var(&c.amount, "amount", 0, "Amount deposited.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordFlow(stonkstats.Deposit, c.date, c.amount)
}

// withdrawCmd holds the flags for the 'withdraw' subcommand.
type withdrawCmd struct {
	date   string
	amount float64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from the account" }
func (*withdrawCmd) Usage() string {
	return `stonk withdraw -amount <amount> [-d <date>]

  Records money moved out of the trading account.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stonkstats.Today().String(), "Date of the withdrawal.")
	f.Float64Var(&c.amount, "amount", 0, "Amount withdrawn.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordFlow(stonkstats.Withdrawal, c.date, c.amount)
}
