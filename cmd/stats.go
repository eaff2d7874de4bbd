package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kristopherluo/StonkStats.io/renderer"
)

// statsCmd holds the flags for the 'stats' subcommand.
type statsCmd struct {
	period string
	start  string
	end    string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display account performance statistics" }
func (*statsCmd) Usage() string {
	return `stonk stats [-p <period> | -s <start_date>] [-d <end_date>]

  Displays win rate, Sharpe ratio, growth and risk over a date range.
  Periods: 30d, 90d, 365d, ytd, max.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (30d, 90d, 365d, ytd, max).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "", "The end date for the range. Defaults to today.")
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.period, c.start, c.end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	as, err := newAccounting()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	stats := as.ComputeStats(rng)
	printMarkdown(renderer.StatsMarkdown(stats))
	return subcommands.ExitSuccess
}
