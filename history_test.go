package stonkstats

import (
	"testing"
	"time"
)

func TestPriceHistoryAppend(t *testing.T) {
	h := &PriceHistory{}
	h.Append(D(2025, time.March, 3), 102)
	h.Append(D(2025, time.March, 1), 100)
	h.Append(D(2025, time.March, 2), 101)

	// appending out of order keeps the series chronological
	var days []Date
	for d := range h.Values() {
		days = append(days, d)
	}
	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			t.Fatalf("history not chronological: %v before %v", days[i-1], days[i])
		}
	}

	// appending at an existing date overwrites
	h.Append(D(2025, time.March, 2), 200)
	if got, _ := h.Get(D(2025, time.March, 2)); got != 200 {
		t.Errorf("Get after overwrite = %v, want 200", got)
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
}

func TestPriceHistoryValueAsOf(t *testing.T) {
	h := &PriceHistory{}
	h.Append(D(2025, time.March, 3), 50)
	h.Append(D(2025, time.March, 10), 55)

	testCases := []struct {
		name     string
		on       Date
		want     float64
		wantSrc  Date
		wantOk   bool
	}{
		{name: "exact", on: D(2025, time.March, 10), want: 55, wantSrc: D(2025, time.March, 10), wantOk: true},
		{name: "falls back to earlier close", on: D(2025, time.March, 7), want: 50, wantSrc: D(2025, time.March, 3), wantOk: true},
		{name: "after last", on: D(2025, time.April, 1), want: 55, wantSrc: D(2025, time.March, 10), wantOk: true},
		{name: "before first", on: D(2025, time.March, 1), wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, src, ok := h.ValueAsOf(tc.on)
			if ok != tc.wantOk {
				t.Fatalf("ValueAsOf(%v) ok = %v, want %v", tc.on, ok, tc.wantOk)
			}
			if !ok {
				return
			}
			if got != tc.want || src != tc.wantSrc {
				t.Errorf("ValueAsOf(%v) = %v on %v, want %v on %v", tc.on, got, src, tc.want, tc.wantSrc)
			}
		})
	}
}

func TestPriceHistoryLatest(t *testing.T) {
	h := &PriceHistory{}
	if day, _ := h.Latest(); !day.IsZero() {
		t.Errorf("Latest on empty history = %v, want zero date", day)
	}
	h.Append(D(2025, time.March, 3), 50)
	h.Append(D(2025, time.March, 10), 55)
	day, value := h.Latest()
	if day != D(2025, time.March, 10) || value != 55 {
		t.Errorf("Latest = %v %v, want 2025-03-10 55", day, value)
	}
}
