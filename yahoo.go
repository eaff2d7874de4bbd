package stonkstats

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
)

// YahooProvider fetches prices from Yahoo Finance. It needs no API key, so
// it is the default provider.
type YahooProvider struct{}

func (YahooProvider) Name() string { return "yahoo" }

// Latest returns the regular market price for the ticker.
func (YahooProvider) Latest(ticker string) (float64, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote for %s: %w", ticker, err)
	}
	if q == nil {
		return 0, fmt.Errorf("no quote for %s", ticker)
	}
	return q.RegularMarketPrice, nil
}

// Daily returns daily closes for the ticker over the range. An open From
// defaults to one year back, an open To defaults to today.
func (YahooProvider) Daily(ticker string, rng Range) (*PriceHistory, error) {
	today := Today()
	from := rng.From
	if from.IsZero() {
		from = today.Add(-365)
	}
	to := rng.To
	if to.IsZero() || to.After(today) {
		to = today
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	// End is exclusive in the chart API, so push it one day past the range.
	endDay := to.Add(1)
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 0, 0, 0, 0, time.UTC)

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	h := &PriceHistory{}
	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()
		on := NewDate(time.Unix(int64(bar.Timestamp), 0).Date())
		h.Append(on, bar.Close.InexactFloat64())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get daily closes for %s: %w", ticker, err)
	}
	return h, nil
}

var _ Provider = YahooProvider{}
