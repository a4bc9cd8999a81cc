package booking

import (
	"context"
	"fmt"
	"sort"

	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/store"
	"campus-booking-backend/internal/timeslot"
)

// ScopePolicy decides how whole-facility bookings and room bookings under the
// same facility relate for conflict purposes.
type ScopePolicy string

const (
	// ScopeIndependent treats the whole-facility scope and each room scope as
	// unrelated: a room booking never blocks a whole-facility booking for the
	// same window, and vice versa.
	ScopeIndependent ScopePolicy = "independent"

	// ScopeStrict makes a whole-facility booking block every room of the
	// facility, and any room booking block the whole-facility scope.
	ScopeStrict ScopePolicy = "strict"
)

// Valid reports whether p is a recognized policy.
func (p ScopePolicy) Valid() bool {
	return p == ScopeIndependent || p == ScopeStrict
}

// Scope identifies what a booking reserves: a facility, and either one of its
// rooms or (nil RoomID) the facility as a whole.
type Scope struct {
	FacilityID int64
	RoomID     *int64
}

// Checker answers "which confirmed bookings collide with this candidate
// window". It never mutates anything and is safe to call repeatedly.
type Checker struct {
	store  store.Store
	policy ScopePolicy
}

// NewChecker creates a conflict checker over the given store.
func NewChecker(s store.Store, policy ScopePolicy) *Checker {
	if !policy.Valid() {
		policy = ScopeIndependent
	}
	return &Checker{store: s, policy: policy}
}

// WithStore returns a checker with the same policy bound to a different store.
// The lifecycle manager uses it to run checks inside a store transaction.
func (c *Checker) WithStore(s store.Store) *Checker {
	return &Checker{store: s, policy: c.policy}
}

// FindConflicts returns the confirmed bookings in scope on date whose interval
// overlaps the candidate, ordered by start time ascending. excludeID removes a
// booking from consideration, used when a booking is checked against itself
// during an update.
func (c *Checker) FindConflicts(ctx context.Context, scope Scope, date string, iv timeslot.Interval, excludeID string) ([]model.Booking, error) {
	if scope.FacilityID == 0 {
		return nil, fmt.Errorf("conflict check requires a facility id")
	}

	// Under the independent policy only the candidate's own room scope can
	// conflict, so the scan narrows to it. Strict mode scans every scope of
	// the facility and filters below.
	var candidates []model.Booking
	var err error
	if c.policy == ScopeIndependent {
		candidates, err = c.ConfirmedInScope(ctx, scope, date)
	} else {
		candidates, err = c.store.ListBookings(ctx, store.BookingFilter{
			FacilityID: scope.FacilityID,
			Date:       date,
			Statuses:   []model.BookingStatus{model.StatusConfirmed},
		})
	}
	if err != nil {
		return nil, err
	}

	var conflicts []model.Booking
	for _, b := range candidates {
		if b.ID == excludeID {
			continue
		}
		if c.policy == ScopeStrict && !strictScopesCollide(b.RoomID, scope.RoomID) {
			continue
		}
		existing := timeslot.Interval{Start: b.StartTime, End: b.EndTime}
		if existing.Overlaps(iv) {
			conflicts = append(conflicts, b)
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].StartTime < conflicts[j].StartTime
	})
	return conflicts, nil
}

// ConfirmedInScope returns the confirmed bookings for one room scope on one
// date, sorted by start time. The availability reconciler shares this
// selection instead of duplicating it.
func (c *Checker) ConfirmedInScope(ctx context.Context, scope Scope, date string) ([]model.Booking, error) {
	return c.store.ListBookings(ctx, store.BookingFilter{
		FacilityID: scope.FacilityID,
		ScopeRoom:  true,
		RoomID:     scope.RoomID,
		Date:       date,
		Statuses:   []model.BookingStatus{model.StatusConfirmed},
	})
}

// FindConflictsLocked is FindConflicts with the matched rows locked for the
// surrounding transaction, closing the check-then-act window on Postgres.
func (c *Checker) FindConflictsLocked(ctx context.Context, scope Scope, date string, iv timeslot.Interval, excludeID string) ([]model.Booking, error) {
	locked := &Checker{store: lockedStore{c.store}, policy: c.policy}
	return locked.FindConflicts(ctx, scope, date, iv, excludeID)
}

// strictScopesCollide reports whether two room scopes collide under
// ScopeStrict: equal rooms always do, and the whole-facility scope collides
// with everything.
func strictScopesCollide(a, b *int64) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}

// lockedStore decorates a store so every booking scan requests row locks.
type lockedStore struct {
	store.Store
}

func (l lockedStore) ListBookings(ctx context.Context, f store.BookingFilter) ([]model.Booking, error) {
	f.ForUpdate = true
	return l.Store.ListBookings(ctx, f)
}
