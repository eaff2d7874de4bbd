package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
)

// trimCmd holds the flags for the 'trim' subcommand.
type trimCmd struct {
	id     string
	date   string
	shares float64
	price  float64
}

func (*trimCmd) Name() string     { return "trim" }
func (*trimCmd) Synopsis() string { return "record a partial exit of an open position" }
func (*trimCmd) Usage() string {
	return `stonk trim -id <entry-id> -shares <count> -price <price> [-d <date>]

  Sells part of an open position, banking the realized profit or loss.
`
}

func (c *trimCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the journal entry to trim.")
	f.StringVar(&c.date, "d", stonkstats.Today().String(), "Date of the partial exit.")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares sold.")
	f.Float64Var(&c.price, "price", 0, "Sell price per share.")
}

func (c *trimCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	shares := stonkstats.Q(c.shares)
	if !shares.IsPositive() || shares.GreaterThan(entry.Remaining) {
		fmt.Fprintf(os.Stderr, "Error: cannot trim %s shares, %s remaining\n", shares, entry.Remaining)
		return subcommands.ExitUsageError
	}

	price := stonkstats.M(c.price, settings.Currency)
	realized := price.Sub(entry.Entry).Mul(shares)

	entry.Trims = append(entry.Trims, stonkstats.Trim{On: on, Shares: shares})
	entry.RealizedPnL = entry.RealizedPnL.Add(realized)
	entry.Remaining = entry.Remaining.Sub(shares)
	entry.Status = stonkstats.StatusTrimmed
	if entry.Remaining.IsZero() {
		// trimming out the last share is a full close
		entry.Status = stonkstats.StatusClosed
		entry.Closed = on
	}

	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Trimmed %s x%s at %s, realized %s\n", entry.Ticker, shares, price, realized.SignedString())
	return subcommands.ExitSuccess
}
