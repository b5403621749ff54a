// Package interval models date ranges with optional bounds. A nil bound
// means the range is open on that side: an unknown start reaches
// arbitrarily far into the past, a missing end means "still ongoing".
package interval

import "time"

type Interval struct {
	From *time.Time
	To   *time.Time
}

func New(from, to *time.Time) Interval {
	return Interval{From: from, To: to}
}

// Overlaps reports whether the two intervals share at least one day.
// Touching bounds count as overlap. Any comparison against an open
// bound succeeds, so two fully open intervals always overlap.
func (i Interval) Overlaps(other Interval) bool {
	if i.From != nil && other.To != nil && i.From.After(*other.To) {
		return false
	}
	if i.To != nil && other.From != nil && other.From.After(*i.To) {
		return false
	}
	return true
}

// CoversYear reports whether any day of the given calendar year falls
// inside the interval.
func (i Interval) CoversYear(year int) bool {
	if i.From != nil && i.From.Year() > year {
		return false
	}
	if i.To != nil && i.To.Year() < year {
		return false
	}
	return true
}

// Open reports whether both bounds are missing.
func (i Interval) Open() bool {
	return i.From == nil && i.To == nil
}
