package timeslot

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidInterval is returned when a wall-clock interval is malformed or
// inverted. Callers match it with errors.Is.
var ErrInvalidInterval = errors.New("invalid interval")

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidClock reports whether s is a zero-padded 24h "HH:MM" between 00:00 and
// 23:59.
func ValidClock(s string) bool {
	return clockRe.MatchString(s)
}

// Interval is a half-open wall-clock range [Start, End) on a single calendar
// date. Times are zero-padded "HH:MM" strings, so lexical comparison matches
// chronological comparison.
type Interval struct {
	Start string
	End   string
}

// New validates start and end and returns the interval. Errors wrap
// ErrInvalidInterval.
func New(start, end string) (Interval, error) {
	if !ValidClock(start) {
		return Interval{}, fmt.Errorf("%w: bad start time %q", ErrInvalidInterval, start)
	}
	if !ValidClock(end) {
		return Interval{}, fmt.Errorf("%w: bad end time %q", ErrInvalidInterval, end)
	}
	if start >= end {
		return Interval{}, fmt.Errorf("%w: start %q not before end %q", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether i and o share any time. Half-open semantics: equal
// boundaries touch but do not overlap, so back-to-back intervals are legal.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Touches reports whether i and o share exactly one boundary without
// overlapping.
func (i Interval) Touches(o Interval) bool {
	return i.End == o.Start || o.End == i.Start
}

// Contains reports whether the clock time t falls inside the half-open
// interval.
func (i Interval) Contains(t string) bool {
	return i.Start <= t && t < i.End
}

func (i Interval) String() string {
	return i.Start + "-" + i.End
}
