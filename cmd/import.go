package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	mapping string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a broker JSON export" }
func (*importCmd) Usage() string {
	return `stonk import [-mapping <file>] <export.json>

  Imports trades from a broker's JSON export into the journal. The optional
  mapping file holds jsonpath expressions locating each trade field; without
  it the journal's own browser-app export format is assumed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mapping, "mapping", "", "JSON file with jsonpath expressions for the broker's format.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one export file to import.")
		return subcommands.ExitUsageError
	}

	mapping := stonkstats.DefaultImportMapping()
	if c.mapping != "" {
		data, err := os.ReadFile(c.mapping)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading mapping %q: %v\n", c.mapping, err)
			return subcommands.ExitFailure
		}
		if err := json.Unmarshal(data, &mapping); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing mapping %q: %v\n", c.mapping, err)
			return subcommands.ExitFailure
		}
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

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	entries, err := stonkstats.ImportTrades(file, mapping, settings.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, e := range entries {
		ledger.Append(e)
	}

	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d trades from %s\n", len(entries), f.Arg(0))
	return subcommands.ExitSuccess
}
