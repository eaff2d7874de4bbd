// Package cmd implements the CLI application to manage a trading journal.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	stonkstats "github.com/kristopherluo/StonkStats.io"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&openCmd{}, "journal")
	c.Register(&trimCmd{}, "journal")
	c.Register(&closeCmd{}, "journal")
	c.Register(&depositCmd{}, "journal")
	c.Register(&withdrawCmd{}, "journal")
	c.Register(&importCmd{}, "journal")

	c.Register(&fetchCmd{}, "prices")

	c.Register(&statsCmd{}, "reports")
	c.Register(&curveCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("journal-file", "journal.jsonl", "Path to the journal file containing trades and cash flows (JSONL format)")
var settingsFile = flag.String("settings-file", "settings.yaml", "Path to the account settings file")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the price cache file (JSONL format)")
var providerName = flag.String("provider", "yahoo", "Price provider to use: yahoo or eodhd")
var eodhdApiKey = flag.String("eodhd-api-key", "", "EODHD API key. If missing it is read from the EODHD_API_KEY environment variable. You can get one at https://eodhd.com/")

// LoadSettings reads the app settings file, falling back to defaults.
func LoadSettings() (stonkstats.Settings, error) {
	return stonkstats.LoadSettings(*settingsFile)
}

// DecodeLedger reads the app journal file. A missing file yields an empty
// ledger.
func DecodeLedger(settings stonkstats.Settings) (*stonkstats.Ledger, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, journal does not exist, starting an empty one instead")
		return stonkstats.NewLedger(settings.Currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open journal %q: %w", *journalFile, err)
	}
	defer f.Close()
	return stonkstats.DecodeLedger(f, settings.Currency)
}

// EncodeLedger rewrites the app journal file. Trims and closes mutate
// existing lines, so the whole file is rewritten rather than appended to.
func EncodeLedger(ledger *stonkstats.Ledger) error {
	f, err := os.Create(*journalFile)
	if err != nil {
		return fmt.Errorf("cannot write journal %q: %w", *journalFile, err)
	}
	defer f.Close()
	return stonkstats.EncodeLedger(f, ledger)
}

// DecodeMarketData reads the app price cache file. A missing file yields an
// empty cache.
func DecodeMarketData(settings stonkstats.Settings) (*stonkstats.MarketData, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return stonkstats.NewMarketData(settings.Currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open price cache %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return stonkstats.DecodeMarketData(f, settings.Currency)
}

// EncodeMarketData rewrites the app price cache file.
func EncodeMarketData(m *stonkstats.MarketData) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return fmt.Errorf("cannot write price cache %q: %w", *pricesFile, err)
	}
	defer f.Close()
	return stonkstats.EncodeMarketData(f, m)
}

// NewProvider returns the price provider selected by the -provider flag.
func NewProvider() (stonkstats.Provider, error) {
	switch *providerName {
	case "yahoo":
		return stonkstats.YahooProvider{}, nil
	case "eodhd":
		return stonkstats.NewEodhdProvider(*eodhdApiKey), nil
	}
	return nil, fmt.Errorf("unknown provider %q: want yahoo or eodhd", *providerName)
}

// newAccounting assembles the full computation context from the app files.
func newAccounting() (*stonkstats.AccountingSystem, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	ledger, err := DecodeLedger(settings)
	if err != nil {
		return nil, err
	}
	market, err := DecodeMarketData(settings)
	if err != nil {
		return nil, err
	}
	return stonkstats.NewAccountingSystem(ledger, market, settings), nil
}

// parseRange resolves the common -p/-s/-d range flags into a Range. A future
// end date is clamped to today; a start after the end is rejected.
func parseRange(period, start, end string) (stonkstats.Range, error) {
	today := stonkstats.Today()

	var to stonkstats.Date
	if end != "" {
		var err error
		to, err = stonkstats.ParseDate(end)
		if err != nil {
			return stonkstats.Range{}, err
		}
		if to.After(today) {
			to = today
		}
	}

	if period != "" {
		anchor := to
		if anchor.IsZero() {
			anchor = today
		}
		return stonkstats.ParseRangePreset(period, anchor)
	}

	var from stonkstats.Date
	if start != "" {
		var err error
		from, err = stonkstats.ParseDate(start)
		if err != nil {
			return stonkstats.Range{}, err
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return stonkstats.Range{}, fmt.Errorf("invalid range: start %s is after end %s", from, to)
	}
	return stonkstats.NewRange(from, to), nil
}

// printMarkdown renders markdown on the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
