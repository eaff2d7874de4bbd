package stonkstats

import (
	"fmt"
	"iter"
	"sort"
)

// Status describes where a trade is in its lifecycle.
type Status string

const (
	StatusOpen    Status = "open"
	StatusTrimmed Status = "trimmed" // partially exited, still holding shares
	StatusClosed  Status = "closed"
)

// Trim is a partial exit of an open position.
type Trim struct {
	On     Date     `json:"date"`
	Shares Quantity `json:"shares"`
}

// JournalEntry is one trade lifecycle record, from open through optional trims
// to close. Entries are read-only once loaded; all valuation is derived.
type JournalEntry struct {
	ID     string
	Ticker string
	Opened Date

	Entry  Money    // entry price per share
	Stop   Money    // stop-loss price per share
	Shares Quantity // original position size in shares

	Status Status
	Closed Date // zero while the position is open

	// RealizedPnL is the canonical realized profit or loss, populated at
	// decode time from whichever field the journal file carries.
	RealizedPnL Money

	Trims []Trim

	// Remaining is the open share count after trims. It is recomputed at
	// decode time so downstream code never has to guess.
	Remaining Quantity
}

// SharesHeldOn returns the number of shares still held at the end of the
// given day: the original size minus every trim dated on or before it.
// The result is never negative.
func (e *JournalEntry) SharesHeldOn(on Date) Quantity {
	held := e.Shares
	for _, t := range e.Trims {
		if !t.On.After(on) {
			held = held.Sub(t.Shares)
		}
	}
	if held.IsNegative() {
		return Q(0)
	}
	return held
}

// OpenOn reports whether the position was open on the given day. The close
// date is exclusive: a trade closed on D no longer counts as open on D.
func (e *JournalEntry) OpenOn(on Date) bool {
	if e.Opened.After(on) {
		return false
	}
	return e.Closed.IsZero() || e.Closed.After(on)
}

// PositionSize returns the original cost basis of the trade, entry price
// times original share count.
func (e *JournalEntry) PositionSize() Money { return e.Entry.Mul(e.Shares) }

// RealizedDate is the day realized profit or loss is attributed to: the close
// date for closed trades, the last trim date for trades that banked money
// while still running. The journal only stores one realized total per entry,
// so the last trim is the best single-day attribution available.
func (e *JournalEntry) RealizedDate() Date {
	if !e.Closed.IsZero() {
		return e.Closed
	}
	if n := len(e.Trims); n > 0 {
		return e.Trims[n-1].On
	}
	return e.Opened
}

// HasRealized reports whether the entry has banked any realized profit or loss.
func (e *JournalEntry) HasRealized() bool { return e.Status != StatusOpen }

// HasExposure reports whether the entry still holds shares today.
func (e *JournalEntry) HasExposure() bool { return e.Status != StatusClosed }

// Validate checks the structural invariants of an entry.
func (e *JournalEntry) Validate() error {
	if e.Ticker == "" {
		return fmt.Errorf("entry %s: missing ticker", e.ID)
	}
	if !e.Shares.IsPositive() {
		return fmt.Errorf("entry %s (%s): shares must be positive", e.ID, e.Ticker)
	}
	trimmed := Q(0)
	for _, t := range e.Trims {
		trimmed = trimmed.Add(t.Shares)
	}
	if trimmed.GreaterThan(e.Shares) {
		return fmt.Errorf("entry %s (%s): trims exceed original size", e.ID, e.Ticker)
	}
	if e.Status == StatusOpen && !e.Closed.IsZero() {
		return fmt.Errorf("entry %s (%s): open trade with a close date", e.ID, e.Ticker)
	}
	if e.Status == StatusClosed && e.Closed.IsZero() {
		return fmt.Errorf("entry %s (%s): closed trade without a close date", e.ID, e.Ticker)
	}
	return nil
}

// FlowType discriminates cash-flow transactions.
type FlowType string

const (
	Deposit    FlowType = "deposit"
	Withdrawal FlowType = "withdrawal"
)

// CashFlow is an external account movement, a deposit or a withdrawal.
// Amount is always non-negative; the sign comes from the type.
type CashFlow struct {
	ID     string
	On     Date
	Type   FlowType
	Amount Money
}

// Signed returns the contribution of the flow to the account balance,
// positive for deposits and negative for withdrawals.
func (f CashFlow) Signed() Money {
	if f.Type == Withdrawal {
		return f.Amount.Neg()
	}
	return f.Amount
}

// Ledger is an in-memory snapshot of the journal: every trade entry and every
// cash-flow transaction, in chronological order. Computations never mutate
// it; a filtered view is a fresh Ledger sharing the underlying records.
type Ledger struct {
	entries []*JournalEntry
	flows   []CashFlow
	cur     string
}

// NewLedger creates an empty ledger denominated in the given currency.
func NewLedger(currency string) *Ledger { return &Ledger{cur: currency} }

// Currency returns the ledger's denomination currency code.
func (l *Ledger) Currency() string { return l.cur }

// Append adds a trade entry to the ledger.
func (l *Ledger) Append(e *JournalEntry) { l.entries = append(l.entries, e) }

// AppendFlow adds a cash-flow transaction to the ledger.
func (l *Ledger) AppendFlow(f CashFlow) { l.flows = append(l.flows, f) }

// stableSort orders entries and flows chronologically, keeping the relative
// order of same-day records.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Opened.Before(l.entries[j].Opened)
	})
	sort.SliceStable(l.flows, func(i, j int) bool {
		return l.flows[i].On.Before(l.flows[j].On)
	})
}

// Entries iterates over all trade entries in chronological order.
func (l *Ledger) Entries() iter.Seq[*JournalEntry] {
	return func(yield func(*JournalEntry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Flows iterates over all cash-flow transactions in chronological order.
func (l *Ledger) Flows() iter.Seq[CashFlow] {
	return func(yield func(CashFlow) bool) {
		for _, f := range l.flows {
			if !yield(f) {
				return
			}
		}
	}
}

// NumEntries returns the number of trade entries.
func (l *Ledger) NumEntries() int { return len(l.entries) }

// Get returns the entry with the given id, or nil.
func (l *Ledger) Get(id string) *JournalEntry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FilterByRange returns a view of the ledger restricted to trades opened and
// flows dated inside the range. Relative order is preserved. Open bounds
// match everything on their side.
func (l *Ledger) FilterByRange(rng Range) *Ledger {
	view := NewLedger(l.cur)
	for _, e := range l.entries {
		if rng.Contains(e.Opened) {
			view.entries = append(view.entries, e)
		}
	}
	for _, f := range l.flows {
		if rng.Contains(f.On) {
			view.flows = append(view.flows, f)
		}
	}
	return view
}

// FirstEntryDate returns the opening date of the earliest trade, or false
// when the ledger holds no trades.
func (l *Ledger) FirstEntryDate() (Date, bool) {
	if len(l.entries) == 0 {
		return Date{}, false
	}
	first := l.entries[0].Opened
	for _, e := range l.entries[1:] {
		if e.Opened.Before(first) {
			first = e.Opened
		}
	}
	return first, true
}

// Tickers iterates over every ticker in the ledger, in order of first
// appearance, without duplicates.
func (l *Ledger) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]bool)
		for _, e := range l.entries {
			if seen[e.Ticker] {
				continue
			}
			seen[e.Ticker] = true
			if !yield(e.Ticker) {
				return
			}
		}
	}
}

// NetCashFlow returns the signed sum of all cash flows dated inside the range.
func (l *Ledger) NetCashFlow(rng Range) Money {
	net := M(0, l.cur)
	for _, f := range l.flows {
		if rng.Contains(f.On) {
			net = net.Add(f.Signed())
		}
	}
	return net
}
