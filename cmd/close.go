package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
)

// closeCmd holds the flags for the 'close' subcommand.
type closeCmd struct {
	id    string
	date  string
	price float64
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "close an open position" }
func (*closeCmd) Usage() string {
	return `stonk close -id <entry-id> -price <price> [-d <date>]

  Sells all remaining shares of a position, banking the realized profit or loss.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the journal entry to close.")
	f.StringVar(&c.date, "d", stonkstats.Today().String(), "Date of the exit.")
	f.Float64Var(&c.price, "price", 0, "Sell price per share.")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := stonkstats.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
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

	entry := ledger.Get(c.id)
	if entry == nil {
		fmt.Fprintf(os.Stderr, "Error: no journal entry with id %q\n", c.id)
		return subcommands.ExitUsageError
	}
	if entry.Status == stonkstats.StatusClosed {
		fmt.Fprintf(os.Stderr, "Error: entry %s (%s) is already closed\n", entry.ID, entry.Ticker)
		return subcommands.ExitUsageError
	}
	if on.Before(entry.Opened) {
		fmt.Fprintf(os.Stderr, "Error: close date %s is before open date %s\n", on, entry.Opened)
		return subcommands.ExitUsageError
	}

	price := stonkstats.M(c.price, settings.Currency)
	realized := price.Sub(entry.Entry).Mul(entry.Remaining)

	entry.RealizedPnL = entry.RealizedPnL.Add(realized)
	entry.Remaining = stonkstats.Q(0)
	entry.Status = stonkstats.StatusClosed
	entry.Closed = on

	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Closed %s at %s, total realized %s\n", entry.Ticker, price, entry.RealizedPnL.SignedString())
	return subcommands.ExitSuccess
}
