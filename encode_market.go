package stonkstats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// tickerCmd is a specialized struct for decoding one price-cache line.
type tickerCmd struct {
	Ticker string             `json:"ticker"`
	Live   float64            `json:"live,omitempty"`
	Closes map[string]float64 `json:"closes,omitempty"`
}

// DecodeMarketData reads a price cache from a stream of JSONL data, one
// ticker per line, into a MarketData denominated in the given currency.
func DecodeMarketData(r io.Reader, currency string) (*MarketData, error) {
	m := NewMarketData(currency)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var temp tickerCmd
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, fmt.Errorf("invalid price line %q: %w", string(lineBytes), err)
		}
		if temp.Ticker == "" {
			return nil, fmt.Errorf("price line without ticker: %q", string(lineBytes))
		}
		if temp.Live > 0 {
			m.SetLive(temp.Ticker, temp.Live)
		}
		for day, price := range temp.Closes {
			on, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("ticker %s: %w", temp.Ticker, err)
			}
			m.SetClose(temp.Ticker, on, price)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prices: %w", err)
	}
	return m, nil
}

// EncodeMarketData persists the price cache to an io.Writer in JSONL format,
// one ticker per line, tickers sorted alphabetically.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	tickers := make([]string, 0, len(m.prices))
	seen := make(map[string]bool)
	for t := range m.prices {
		tickers, seen[t] = append(tickers, t), true
	}
	for t := range m.live {
		if !seen[t] {
			tickers = append(tickers, t)
		}
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		line := tickerCmd{Ticker: t, Live: m.live[t]}
		if h := m.prices[t]; h != nil && h.Len() > 0 {
			line.Closes = make(map[string]float64, h.Len())
			for on, price := range h.Values() {
				line.Closes[on.String()] = price
			}
		}
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("ticker %s: %w", t, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write price line: %w", err)
		}
	}
	return nil
}
