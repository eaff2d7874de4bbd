package stonkstats

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	on := D(2025, time.March, 20)

	testCases := []struct {
		name      string
		closes    map[Date]float64 // historical closes for the ticker
		live      float64          // live quote, 0 for none
		wantPrice float64
		wantSrc   Date
		wantOk    bool
	}{
		{
			name:      "fresh close is authoritative",
			closes:    map[Date]float64{D(2025, time.March, 19): 50},
			live:      60,
			wantPrice: 50,
			wantSrc:   D(2025, time.March, 19),
			wantOk:    true,
		},
		{
			name:      "stale close loses to live quote",
			closes:    map[Date]float64{D(2025, time.March, 15): 50}, // 5 days stale
			live:      60,
			wantPrice: 60,
			wantSrc:   on,
			wantOk:    true,
		},
		{
			name:      "stale close still wins without a live quote",
			closes:    map[Date]float64{D(2025, time.March, 15): 50},
			wantPrice: 50,
			wantSrc:   D(2025, time.March, 15),
			wantOk:    true,
		},
		{
			name:      "close beyond lookback is ignored, live stands in",
			closes:    map[Date]float64{D(2025, time.March, 1): 50}, // 19 days back
			live:      60,
			wantPrice: 60,
			wantSrc:   on,
			wantOk:    true,
		},
		{
			name:      "no history at all, live stands in",
			live:      60,
			wantPrice: 60,
			wantSrc:   on,
			wantOk:    true,
		},
		{
			name:   "nothing resolvable",
			wantOk: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := NewMarketData("USD")
			for day, price := range tc.closes {
				market.SetClose("NVDA", day, price)
			}
			if tc.live != 0 {
				market.SetLive("NVDA", tc.live)
			}

			r := NewPriceResolver(market, DefaultSettings())
			got, ok := r.Resolve("NVDA", on)
			if ok != tc.wantOk {
				t.Fatalf("Resolve ok = %v, want %v", ok, tc.wantOk)
			}
			if !ok {
				return
			}
			if !got.Price.Equal(USD(tc.wantPrice)) {
				t.Errorf("Resolve price = %v, want %v", got.Price, tc.wantPrice)
			}
			if got.SourceDate != tc.wantSrc {
				t.Errorf("Resolve source date = %v, want %v", got.SourceDate, tc.wantSrc)
			}
		})
	}
}

// The staleness threshold comes from settings, not from a constant.
func TestResolveConfigurableStaleness(t *testing.T) {
	market := NewMarketData("USD")
	market.SetClose("NVDA", D(2025, time.March, 15), 50) // 5 days before the request
	market.SetLive("NVDA", 60)

	s := DefaultSettings()
	s.StalenessDays = 6
	r := NewPriceResolver(market, s)

	got, ok := r.Resolve("NVDA", D(2025, time.March, 20))
	if !ok || !got.Price.Equal(USD(50)) {
		t.Errorf("with a 6-day threshold the close is still trusted, got %v", got.Price)
	}
}

func TestResolveLive(t *testing.T) {
	market := NewMarketData("USD")
	market.SetClose("NVDA", D(2025, time.March, 15), 50)

	r := NewPriceResolver(market, DefaultSettings())

	// without a live quote, the freshest close stands in
	got, ok := r.ResolveLive("NVDA")
	if !ok || !got.Price.Equal(USD(50)) {
		t.Errorf("ResolveLive without quote = %v %v, want the last close", got.Price, ok)
	}

	market.SetLive("NVDA", 60)
	got, ok = r.ResolveLive("NVDA")
	if !ok || !got.Price.Equal(USD(60)) {
		t.Errorf("ResolveLive = %v %v, want the live quote", got.Price, ok)
	}

	if _, ok := r.ResolveLive("ZZZZ"); ok {
		t.Error("ResolveLive for an unknown ticker should fail")
	}
}
