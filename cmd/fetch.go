package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	start string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "refresh the price cache from the provider" }
func (*fetchCmd) Usage() string {
	return `stonk fetch [-s <start_date>]

  Fetches daily closes and live quotes for every ticker in the journal and
  stores them in the price cache. The fetch starts at the first journal entry
  unless -s is given.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Fetch closes starting from this date.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var tickers []string
	for t := range ledger.Tickers() {
		tickers = append(tickers, t)
	}
	if len(tickers) == 0 {
		fmt.Println("No tickers in the journal, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	from, _ := ledger.FirstEntryDate()
	if c.start != "" {
		if from, err = stonkstats.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	rng := stonkstats.NewRange(from, stonkstats.Today())

	provider, err := NewProvider()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	market, err := DecodeMarketData(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := market.Refresh(provider, tickers, rng); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeMarketData(market); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Refreshed prices for %d tickers from %s\n", len(tickers), provider.Name())
	return subcommands.ExitSuccess
}
