package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kristopherluo/StonkStats.io/renderer"
)

// curveCmd holds the flags for the 'curve' subcommand.
type curveCmd struct {
	period string
	start  string
	end    string
	png    string
}

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "reconstruct the account's equity curve" }
func (*curveCmd) Usage() string {
	return `stonk curve [-p <period> | -s <start_date>] [-d <end_date>] [-png <file>]

  Reconstructs the account's day-by-day value over a date range and renders it
  as a table, or as a PNG line chart when -png is given.
`
}

func (c *curveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (30d, 90d, 365d, ytd, max).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "", "The end date for the range. Defaults to today.")
	f.StringVar(&c.png, "png", "", "Write the curve as a PNG chart to this file instead of printing a table.")
}

func (c *curveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	curve := as.EquityCurve(rng)

	if c.png != "" {
		img, err := renderer.CurvePNG(curve, "Equity Curve")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.png, img, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", c.png, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %s\n", c.png)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.CurveMarkdown(curve))
	return subcommands.ExitSuccess
}
