package stonkstats

import (
	"iter"
	"slices"
	"sort"
)

// PriceHistory stores a chronological series of closing prices, each
// associated with a calendar day. Dates are unique and the series is always
// sorted.
type PriceHistory struct {
	days   []Date
	values []float64
}

// Latest returns the latest date and price in the history.
// If the history is empty, it returns zero values.
func (h *PriceHistory) Latest() (day Date, value float64) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, 0
	}
	return h.days[last], h.values[last]
}

// Len returns the number of points in the history.
func (h *PriceHistory) Len() int { return len(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *PriceHistory }

func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *PriceHistory) sort() { sort.Sort(chronological{h}) }

// Append adds a point to the history.
//
// An existing price at that date is overwritten.
func (h *PriceHistory) Append(on Date, price float64) *PriceHistory {
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same day.
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = price
		return h
	}
	// We need to increase the memory first.
	h.days, h.values = append(h.days, on), append(h.values, price)
	h.sort()
	return h
}

// Values returns an iterator over all date/price pairs in the history, in chronological order.
func (h *PriceHistory) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the price at 'day' and true, or zero and false.
func (h *PriceHistory) Get(day Date) (float64, bool) {
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the price on a given day, or the most recent price before
// it, together with the day that price was actually observed on.
// It returns false when no price exists on or before the given day.
func (h *PriceHistory) ValueAsOf(day Date) (float64, Date, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})

	if found {
		return h.values[i], h.days[i], true
	}

	// Not found. `i` is the index where `day` would be inserted.
	// The point we want is at `i-1`, the last one before the target date.
	if i == 0 {
		return 0, Date{}, false // No date on or before the given day.
	}
	return h.values[i-1], h.days[i-1], true
}
