package timeslot

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed zero-padded "YYYY-MM-DD" date.
func ValidDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	return err == nil && t.Format(dateLayout) == s
}

// DateRange expands an inclusive date range into ascending calendar days.
// Returns an error when either bound is malformed or from is after to.
func DateRange(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil || start.Format(dateLayout) != from {
		return nil, fmt.Errorf("bad range start date %q", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil || end.Format(dateLayout) != to {
		return nil, fmt.Errorf("bad range end date %q", to)
	}
	if start.After(end) {
		return nil, fmt.Errorf("range start %q after end %q", from, to)
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days, nil
}

// DateOf formats an instant as the calendar day it falls on.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}

// ClockOf formats an instant as a zero-padded "HH:MM" wall-clock time.
func ClockOf(t time.Time) string {
	return t.Format("15:04")
}
