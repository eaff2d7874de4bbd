package stonkstats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType discriminates journal file lines.
type CommandType string

const (
	CmdTrade    CommandType = "trade"
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
)

// tradeCmd is a specialized struct for decoding trade lines. It carries both
// the current realized field and the legacy one so old journal files keep
// loading.
type tradeCmd struct {
	ID         string           `json:"id"`
	Date       Date             `json:"date"`
	Ticker     string           `json:"ticker"`
	EntryPrice decimal.Decimal  `json:"entryPrice"`
	StopPrice  decimal.Decimal  `json:"stopPrice"`
	Shares     Quantity         `json:"shares"`
	Status     Status           `json:"status"`
	CloseDate  Date             `json:"closeDate"`
	Realized   *decimal.Decimal `json:"totalRealizedPnL"`
	LegacyPnL  *decimal.Decimal `json:"pnl"` // superseded by totalRealizedPnL
	Trims      []Trim           `json:"trims"`
}

// entry normalizes a decoded trade line into a JournalEntry: one canonical
// realized field, a recomputed remaining share count and a derived status
// when the file omits one.
func (c tradeCmd) entry(currency string) *JournalEntry {
	e := &JournalEntry{
		ID:     c.ID,
		Ticker: c.Ticker,
		Opened: c.Date,
		Entry:  M(c.EntryPrice, currency),
		Stop:   M(c.StopPrice, currency),
		Shares: c.Shares,
		Status: c.Status,
		Closed: c.CloseDate,
		Trims:  c.Trims,
	}
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}

	realized := c.Realized
	if realized == nil {
		realized = c.LegacyPnL
	}
	if realized != nil {
		e.RealizedPnL = M(*realized, currency)
	} else {
		e.RealizedPnL = M(0, currency)
	}

	if e.Status == "" {
		switch {
		case !e.Closed.IsZero():
			e.Status = StatusClosed
		case len(e.Trims) > 0:
			e.Status = StatusTrimmed
		default:
			e.Status = StatusOpen
		}
	}

	remaining := e.Shares
	for _, t := range e.Trims {
		remaining = remaining.Sub(t.Shares)
	}
	if e.Status == StatusClosed || remaining.IsNegative() {
		remaining = Q(0)
	}
	e.Remaining = remaining
	return e
}

// flowCmd is a specialized struct for decoding deposit and withdraw lines.
type flowCmd struct {
	ID     string          `json:"id"`
	Date   Date            `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func (c flowCmd) flow(t FlowType, currency string) CashFlow {
	f := CashFlow{ID: c.ID, On: c.Date, Type: t, Amount: M(c.Amount, currency)}
	if f.ID == "" {
		f.ID = ulid.Make().String()
	}
	return f
}

// DecodeLedger decodes a journal from a stream of JSONL data, one command per
// line, and returns a chronologically sorted Ledger denominated in the given
// currency.
func DecodeLedger(r io.Reader, currency string) (*Ledger, error) {
	ledger := NewLedger(currency)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case CmdTrade:
			var temp tradeCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			e := temp.entry(currency)
			if err := e.Validate(); err != nil {
				return nil, err
			}
			ledger.Append(e)
		case CmdDeposit:
			var temp flowCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			ledger.AppendFlow(temp.flow(Deposit, currency))
		case CmdWithdraw:
			var temp flowCmd
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			ledger.AppendFlow(temp.flow(Withdrawal, currency))
		default:
			return nil, fmt.Errorf("unknown journal command: %q", identifier.Command)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Perform a stable sort on the ledger based on record dates.
	ledger.stableSort()

	return ledger, nil
}

// marshalEntry writes a trade line with a canonical field order.
func marshalEntry(e *JournalEntry) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", CmdTrade)
	w.Append("id", e.ID)
	w.Append("date", e.Opened)
	w.Append("ticker", e.Ticker)
	w.Append("entryPrice", e.Entry)
	w.Append("stopPrice", e.Stop)
	w.Append("shares", e.Shares)
	w.Append("status", e.Status)
	if !e.Closed.IsZero() {
		w.Append("closeDate", e.Closed)
	}
	if e.HasRealized() {
		w.Append("totalRealizedPnL", e.RealizedPnL)
	}
	if len(e.Trims) > 0 {
		w.Append("trims", e.Trims)
	}
	return w.MarshalJSON()
}

func marshalFlow(f CashFlow) ([]byte, error) {
	cmd := CmdDeposit
	if f.Type == Withdrawal {
		cmd = CmdWithdraw
	}
	var w jsonObjectWriter
	w.Append("command", cmd)
	w.Append("id", f.ID)
	w.Append("date", f.On)
	w.Append("amount", f.Amount)
	return w.MarshalJSON()
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, records
// sorted chronologically, same-day records keeping their relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	decimal.MarshalJSONWithoutQuotes = true
	ledger.stableSort()

	write := func(data []byte, err error) error {
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write journal line: %w", err)
		}
		return nil
	}

	for e := range ledger.Entries() {
		if err := write(marshalEntry(e)); err != nil {
			return err
		}
	}
	for f := range ledger.Flows() {
		if err := write(marshalFlow(f)); err != nil {
			return err
		}
	}
	return nil
}
