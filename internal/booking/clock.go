package booking

import "time"

// Clock supplies the current moment. The availability reconciler uses it for
// the "is this room free right now" flag; tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
