package stonkstats

import (
	"fmt"
	"log"
)

// PriceSource is what the valuation code reads prices from.
//
// HistoricalPrice returns the close on the given day or the nearest earlier
// one, together with the day it was actually observed on, so the caller can
// judge staleness. HasHistory reports whether historical lookups can succeed
// at all; when false the resolver skips straight to live prices.
type PriceSource interface {
	CurrentPrice(ticker string) (Money, bool)
	HistoricalPrice(ticker string, on Date) (Money, Date, bool)
	HasHistory() bool
}

// MarketData is an in-memory price cache: one close series per ticker plus a
// set of live quotes. It is filled once per computation pass and read
// synchronously afterwards.
type MarketData struct {
	cur    string
	prices map[string]*PriceHistory
	live   map[string]float64
}

// NewMarketData creates an empty cache denominated in the given currency.
func NewMarketData(currency string) *MarketData {
	return &MarketData{
		cur:    currency,
		prices: make(map[string]*PriceHistory),
		live:   make(map[string]float64),
	}
}

// SetLive records a live quote for a ticker.
func (m *MarketData) SetLive(ticker string, price float64) { m.live[ticker] = price }

// SetClose records a historical close for a ticker on a day.
func (m *MarketData) SetClose(ticker string, on Date, price float64) {
	h := m.prices[ticker]
	if h == nil {
		h = &PriceHistory{}
		m.prices[ticker] = h
	}
	h.Append(on, price)
}

// History returns the close series for a ticker, or nil.
func (m *MarketData) History(ticker string) *PriceHistory { return m.prices[ticker] }

// CurrentPrice implements PriceSource.
func (m *MarketData) CurrentPrice(ticker string) (Money, bool) {
	p, ok := m.live[ticker]
	if !ok {
		return Money{}, false
	}
	return M(p, m.cur), true
}

// HistoricalPrice implements PriceSource. It returns the close on 'on' or the
// nearest earlier one with its source day.
func (m *MarketData) HistoricalPrice(ticker string, on Date) (Money, Date, bool) {
	h := m.prices[ticker]
	if h == nil {
		return Money{}, Date{}, false
	}
	p, src, ok := h.ValueAsOf(on)
	if !ok {
		return Money{}, Date{}, false
	}
	return M(p, m.cur), src, true
}

// HasHistory implements PriceSource.
func (m *MarketData) HasHistory() bool { return len(m.prices) > 0 }

// Refresh fills the cache from a provider for every given ticker: daily
// closes over the range plus a live quote. A ticker whose fetch fails is
// logged and skipped, the rest of the cache stays usable.
func (m *MarketData) Refresh(p Provider, tickers []string, rng Range) error {
	var failed int
	for _, ticker := range tickers {
		h, err := p.Daily(ticker, rng)
		if err != nil {
			log.Printf("warning: %s: no daily closes from %s: %v", ticker, p.Name(), err)
			failed++
		} else {
			for on, price := range h.Values() {
				m.SetClose(ticker, on, price)
			}
		}
		live, err := p.Latest(ticker)
		if err != nil {
			log.Printf("warning: %s: no live quote from %s: %v", ticker, p.Name(), err)
			continue
		}
		m.SetLive(ticker, live)
	}
	if failed == len(tickers) && failed > 0 {
		return fmt.Errorf("%s: all %d tickers failed", p.Name(), failed)
	}
	return nil
}

var _ PriceSource = (*MarketData)(nil)
