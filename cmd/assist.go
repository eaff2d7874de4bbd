package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/kristopherluo/StonkStats.io/agent"
	"github.com/kristopherluo/StonkStats.io/renderer"
	"google.golang.org/genai"
)

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	period string
	start  string
	end    string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI analyst to comment on performance" }
func (*assistCmd) Usage() string {
	return `stonk assist [-p <period> | -s <start_date>] [-d <end_date>] [question...]

  Computes the performance report for the range and asks the AI analyst to
  comment on it. Extra arguments form a question for the analyst.
  Requires Gemini credentials in the environment.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (30d, 90d, 365d, ytd, max).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.end, "d", "", "The end date for the range. Defaults to today.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := renderer.StatsMarkdown(as.ComputeStats(rng)) + "\n" + renderer.CurveMarkdown(as.EquityCurve(rng))
	question := strings.Join(f.Args(), " ")

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst()
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting analyst:", err)
		return subcommands.ExitFailure
	}
	commentary, err := analyst.Comment(ctx, report, question)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(commentary)
	return subcommands.ExitSuccess
}
