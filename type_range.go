package stonkstats

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Range is an inclusive date interval.
//
// A zero From means the range is open on the left (no lower bound), a zero To
// means it is open on the right. The zero Range contains every date.
type Range struct {
	From, To Date
}

// NewRange returns an inclusive range between from and to.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Since returns a range from the given date, open on the right.
func Since(from Date) Range { return Range{From: from} }

// Until returns a range up to the given date, open on the left.
func Until(to Date) Range { return Range{To: to} }

// IsZero returns true when the range has no bound on either side.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains reports whether d falls inside the range. Open bounds match
// everything on their side.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Days iterates over all the dates in the range, in chronological order.
// Both bounds must be set.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if r.From.IsZero() || r.To.IsZero() {
			return
		}
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string {
	from, to := "...", "..."
	if !r.From.IsZero() {
		from = r.From.String()
	}
	if !r.To.IsZero() {
		to = r.To.String()
	}
	return fmt.Sprintf("%s to %s", from, to)
}

// ParseRangePreset resolves a named period into a Range anchored at 'on'.
//
// Supported presets are "30d", "90d", "365d", "ytd" and "max". "max" returns
// the zero Range.
func ParseRangePreset(name string, on Date) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "30d":
		return Range{From: on.Add(-30), To: on}, nil
	case "90d":
		return Range{From: on.Add(-90), To: on}, nil
	case "365d":
		return Range{From: on.Add(-365), To: on}, nil
	case "ytd":
		return Range{From: NewDate(on.Year(), time.January, 1), To: on}, nil
	case "max", "":
		return Range{}, nil
	}
	return Range{}, fmt.Errorf("invalid period %q: want one of 30d, 90d, 365d, ytd, max", name)
}
