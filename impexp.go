package stonkstats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/oklog/ulid/v2"
)

// this file contains functions to import trades from third-party JSON
// exports. Broker exports disagree on field names, so the import is driven by
// a set of jsonpath expressions rather than a fixed struct.

// ImportMapping locates trade fields inside a broker's JSON export. Root
// selects the array of trade objects; the remaining paths are evaluated
// relative to each trade object. Paths for optional fields may be empty.
type ImportMapping struct {
	Root       string `json:"root"`
	Ticker     string `json:"ticker"`
	Date       string `json:"date"`
	EntryPrice string `json:"entryPrice"`
	StopPrice  string `json:"stopPrice,omitempty"`
	Shares     string `json:"shares"`
	CloseDate  string `json:"closeDate,omitempty"`
	Realized   string `json:"realized,omitempty"`

	// Trims selects the array of partial exits; TrimDate and TrimShares are
	// evaluated relative to each element of it.
	Trims      string `json:"trims,omitempty"`
	TrimDate   string `json:"trimDate,omitempty"`
	TrimShares string `json:"trimShares,omitempty"`
}

// DefaultImportMapping matches the journal's own browser-app export format.
func DefaultImportMapping() ImportMapping {
	return ImportMapping{
		Root:       "$.entries",
		Ticker:     "$.ticker",
		Date:       "$.timestamp",
		EntryPrice: "$.entryPrice",
		StopPrice:  "$.stopPrice",
		Shares:     "$.shares",
		CloseDate:  "$.closeDate",
		Realized:   "$.totalRealizedPnL",
		Trims:      "$.trimHistory",
		TrimDate:   "$.date",
		TrimShares: "$.shares",
	}
}

// jeval evaluates a jsonpath expression, yielding nil when the path matches
// nothing. Broker exports omit optional fields entirely, so a non-matching
// path is absence, not an error; a path that does not parse is one.
func jeval(path string, jobj any) (any, error) {
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	jval, err := eval(context.Background(), jobj)
	if err != nil {
		return nil, nil
	}
	return jval, nil
}

// jget evaluates a jsonpath expression and unwraps single-element lists.
func jget(path string, jobj any) (any, error) {
	jval, err := jeval(path, jobj)
	if err != nil {
		return nil, err
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

// jlist evaluates a path expected to yield an array. A missing or null value
// yields nil.
func jlist(path string, jobj any) ([]any, error) {
	if path == "" {
		return nil, nil
	}
	jval, err := jeval(path, jobj)
	if err != nil || jval == nil {
		return nil, err
	}
	l, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("path %q: want an array, got %T", path, jval)
	}
	return l, nil
}

// jstring evaluates a path expected to yield a string. A missing or null
// value yields "".
func jstring(path string, jobj any) (string, error) {
	if path == "" {
		return "", nil
	}
	jval, err := jget(path, jobj)
	if err != nil || jval == nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("path %q: want a string, got %T", path, jval)
	}
	return s, nil
}

// jfloat evaluates a path expected to yield a number. A missing or null
// value yields (0, false).
func jfloat(path string, jobj any) (float64, bool, error) {
	if path == "" {
		return 0, false, nil
	}
	jval, err := jget(path, jobj)
	if err != nil || jval == nil {
		return 0, false, err
	}
	f, ok := jval.(float64)
	if !ok {
		return 0, false, fmt.Errorf("path %q: want a number, got %T", path, jval)
	}
	return f, true, nil
}

// ImportTrades reads a broker JSON export from 'r' and converts every trade
// the mapping locates into a normalized JournalEntry denominated in the given
// currency.
func ImportTrades(r io.Reader, mapping ImportMapping, currency string) ([]*JournalEntry, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse import file: %w", err)
	}

	jroot, err := jsonpath.Get(mapping.Root, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating root %q: %w", mapping.Root, err)
	}
	jtrades, ok := jroot.([]any)
	if !ok {
		return nil, fmt.Errorf("root %q: want an array of trades, got %T", mapping.Root, jroot)
	}

	var entries []*JournalEntry
	for i, jtrade := range jtrades {
		e, err := importTrade(jtrade, mapping, currency)
		if err != nil {
			return nil, fmt.Errorf("trade #%d: %w", i, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("trade #%d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func importTrade(jtrade any, mapping ImportMapping, currency string) (*JournalEntry, error) {
	ticker, err := jstring(mapping.Ticker, jtrade)
	if err != nil {
		return nil, err
	}
	opened, err := jstring(mapping.Date, jtrade)
	if err != nil {
		return nil, err
	}
	on, err := ParseDate(opened)
	if err != nil {
		return nil, err
	}

	entry, _, err := jfloat(mapping.EntryPrice, jtrade)
	if err != nil {
		return nil, err
	}
	stop, _, err := jfloat(mapping.StopPrice, jtrade)
	if err != nil {
		return nil, err
	}
	shares, _, err := jfloat(mapping.Shares, jtrade)
	if err != nil {
		return nil, err
	}

	e := &JournalEntry{
		ID:          ulid.Make().String(),
		Ticker:      ticker,
		Opened:      on,
		Entry:       M(entry, currency),
		Stop:        M(stop, currency),
		Shares:      Q(shares),
		Status:      StatusOpen,
		RealizedPnL: M(0, currency),
		Remaining:   Q(shares),
	}

	if closed, err := jstring(mapping.CloseDate, jtrade); err != nil {
		return nil, err
	} else if closed != "" {
		on, err := ParseDate(closed)
		if err != nil {
			return nil, err
		}
		e.Closed = on
		e.Status = StatusClosed
		e.Remaining = Q(0)
	}

	jtrims, err := jlist(mapping.Trims, jtrade)
	if err != nil {
		return nil, err
	}
	for _, jtrim := range jtrims {
		day, err := jstring(mapping.TrimDate, jtrim)
		if err != nil {
			return nil, err
		}
		on, err := ParseDate(day)
		if err != nil {
			return nil, err
		}
		shares, _, err := jfloat(mapping.TrimShares, jtrim)
		if err != nil {
			return nil, err
		}
		e.Trims = append(e.Trims, Trim{On: on, Shares: Q(shares)})
	}
	if len(e.Trims) > 0 {
		if e.Status == StatusOpen {
			e.Status = StatusTrimmed
		}
		if e.Status != StatusClosed {
			remaining := e.Shares
			for _, t := range e.Trims {
				remaining = remaining.Sub(t.Shares)
			}
			if remaining.IsNegative() {
				remaining = Q(0)
			}
			e.Remaining = remaining
		}
	}

	if realized, ok, err := jfloat(mapping.Realized, jtrade); err != nil {
		return nil, err
	} else if ok {
		e.RealizedPnL = M(realized, currency)
		if e.Status == StatusOpen && !e.RealizedPnL.IsZero() {
			// money banked while still open means a partial exit happened
			e.Status = StatusTrimmed
		}
	}
	return e, nil
}
