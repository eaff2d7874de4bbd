package stonkstats

import (
	"testing"
	"time"
)

// D is a helper for tests to build a date from constants.
func D(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

// openTrade builds an open journal entry for tests.
func openTrade(id, ticker string, opened Date, entry, stop, shares float64) *JournalEntry {
	return &JournalEntry{
		ID:          id,
		Ticker:      ticker,
		Opened:      opened,
		Entry:       USD(entry),
		Stop:        USD(stop),
		Shares:      Q(shares),
		Status:      StatusOpen,
		RealizedPnL: USD(0),
		Remaining:   Q(shares),
	}
}

// closedTrade builds a closed journal entry with a fixed realized result.
func closedTrade(id, ticker string, opened, closed Date, entry, stop, shares, realized float64) *JournalEntry {
	return &JournalEntry{
		ID:          id,
		Ticker:      ticker,
		Opened:      opened,
		Entry:       USD(entry),
		Stop:        USD(stop),
		Shares:      Q(shares),
		Status:      StatusClosed,
		Closed:      closed,
		RealizedPnL: USD(realized),
		Remaining:   Q(0),
	}
}

// testSettings returns settings for a 10k USD account with default thresholds.
func testSettings(starting float64) Settings {
	s := DefaultSettings()
	s.StartingAccountSize = starting
	return s
}

// testSystem assembles an accounting system over a ledger and market data.
func testSystem(t *testing.T, ledger *Ledger, market *MarketData, starting float64) *AccountingSystem {
	t.Helper()
	ledger.stableSort()
	return NewAccountingSystem(ledger, market, testSettings(starting))
}
