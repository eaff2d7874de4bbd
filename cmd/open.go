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

// openCmd holds the flags for the 'open' subcommand.
type openCmd struct {
	date   string
	ticker string
	entry  float64
	stop   float64
	shares float64
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "record a new trade entry in the journal" }
func (*openCmd) Usage() string {
	return `stonk open -ticker <ticker> -entry <price> -stop <price> -shares <count> [-d <date>]

  Records a new open position in the journal.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stonkstats.Today().String(), "Date the position was opened.")
	f.StringVar(&c.ticker, "ticker", "", "Ticker of the traded security.")
	f.Float64Var(&c.entry, "entry", 0, "Entry price per share.")
	f.Float64Var(&c.stop, "stop", 0, "Stop-loss price per share.")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares bought.")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := stonkstats.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if on.After(stonkstats.Today()) {
		fmt.Fprintln(os.Stderr, "Error: cannot open a trade in the future.")
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

	entry := &stonkstats.JournalEntry{
		ID:          ulid.Make().String(),
		Ticker:      c.ticker,
		Opened:      on,
		Entry:       stonkstats.M(c.entry, settings.Currency),
		Stop:        stonkstats.M(c.stop, settings.Currency),
		Shares:      stonkstats.Q(c.shares),
		Status:      stonkstats.StatusOpen,
		RealizedPnL: stonkstats.M(0, settings.Currency),
		Remaining:   stonkstats.Q(c.shares),
	}
	if err := entry.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	ledger.Append(entry)
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Opened %s x%s at %s (id %s)\n", entry.Ticker, entry.Shares, entry.Entry, entry.ID)
	return subcommands.ExitSuccess
}
