package booking

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/store"
	"campus-booking-backend/internal/timeslot"
)

// OpenHours is the nominal bookable window per day. The same window applies to
// every day of a query.
type OpenHours struct {
	Start string
	End   string
}

// Interval validates the window and returns it as a timeslot interval.
func (h OpenHours) Interval() (timeslot.Interval, error) {
	return timeslot.New(h.Start, h.End)
}

// Slot is a derived contiguous time range within open hours, labeled free or
// occupied. Slots are recomputed on every query and never stored.
type Slot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// DayAvailability is the full slot timeline for one scope on one date.
type DayAvailability struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// RoomAvailability is the per-room breakdown: the room, its confirmed bookings
// over the queried range, whether it is free at the current moment, and its
// day-by-day slots.
type RoomAvailability struct {
	Room        model.Room        `json:"room"`
	Bookings    []model.Booking   `json:"bookings"`
	IsAvailable bool              `json:"isAvailable"`
	Days        []DayAvailability `json:"days"`
}

// OpenHoursView echoes the window the slots were derived against.
type OpenHoursView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FacilityAvailability is the derived availability view for a facility across
// a date range: whole-facility scope first, then one entry per room.
type FacilityAvailability struct {
	FacilityID int64              `json:"facilityId"`
	DateFrom   string             `json:"dateFrom"`
	DateTo     string             `json:"dateTo"`
	OpenHours  OpenHoursView      `json:"openHours"`
	Bookings   []model.Booking    `json:"bookings"`
	Days       []DayAvailability  `json:"days"`
	Rooms      []RoomAvailability `json:"rooms,omitempty"`
}

// CheckResult answers a single "is this window free" question.
type CheckResult struct {
	IsAvailable bool            `json:"isAvailable"`
	Conflicts   []model.Booking `json:"conflictingBookings,omitempty"`
}

// Reconciler turns stored bookings into the derived free/occupied view. It is
// read-only and deterministic for a given store snapshot.
type Reconciler struct {
	store   store.Store
	checker *Checker
	clock   Clock

	// mergeTouching collapses exactly back-to-back occupied spans into one.
	// Off by default to preserve slot granularity for display.
	mergeTouching bool
}

// NewReconciler creates an availability reconciler sharing the checker's
// selection logic.
func NewReconciler(s store.Store, checker *Checker, clock Clock, mergeTouching bool) *Reconciler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Reconciler{store: s, checker: checker, clock: clock, mergeTouching: mergeTouching}
}

// CheckAvailability reports whether one facility/room window is free and, when
// it is not, which confirmed bookings block it.
func (r *Reconciler) CheckAvailability(ctx context.Context, facilityID int64, roomID *int64, date, start, end string) (*CheckResult, error) {
	iv, err := timeslot.New(start, end)
	if err != nil {
		return nil, err
	}
	if !timeslot.ValidDate(date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInterval, date)
	}

	fac, err := r.store.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrFacilityNotFound, facilityID)
		}
		return nil, err
	}
	if roomID != nil {
		known := false
		for _, room := range fac.Rooms {
			if room.ID == *roomID {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: facility %d has no room %d", ErrFacilityNotFound, facilityID, *roomID)
		}
	}

	conflicts, err := r.checker.FindConflicts(ctx, Scope{FacilityID: facilityID, RoomID: roomID}, date, iv, "")
	if err != nil {
		return nil, err
	}
	return &CheckResult{IsAvailable: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// ComputeAvailability derives the free/occupied view for every scope of a
// facility over an inclusive date range.
func (r *Reconciler) ComputeAvailability(ctx context.Context, facilityID int64, from, to string, hours OpenHours) (*FacilityAvailability, error) {
	window, err := hours.Interval()
	if err != nil {
		return nil, err
	}
	days, err := timeslot.DateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	fac, err := r.store.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrFacilityNotFound, facilityID)
		}
		return nil, err
	}

	now := r.clock.Now()
	today := timeslot.DateOf(now)
	nowClock := timeslot.ClockOf(now)
	rangeHasToday := from <= today && today <= to

	out := &FacilityAvailability{
		FacilityID: fac.ID,
		DateFrom:   from,
		DateTo:     to,
		OpenHours:  OpenHoursView{StartTime: window.Start, EndTime: window.End},
	}

	wholeScope := Scope{FacilityID: fac.ID, RoomID: nil}
	out.Bookings, out.Days, err = r.scopeView(ctx, wholeScope, days, window)
	if err != nil {
		return nil, err
	}

	for _, room := range fac.Rooms {
		roomID := room.ID
		scope := Scope{FacilityID: fac.ID, RoomID: &roomID}
		bookings, slots, err := r.scopeView(ctx, scope, days, window)
		if err != nil {
			return nil, err
		}
		out.Rooms = append(out.Rooms, RoomAvailability{
			Room:        room,
			Bookings:    bookings,
			IsAvailable: !rangeHasToday || !coversMoment(bookings, today, nowClock),
			Days:        slots,
		})
	}
	return out, nil
}

// scopeView gathers one scope's confirmed bookings for the whole range and
// derives the per-day slot timelines.
func (r *Reconciler) scopeView(ctx context.Context, scope Scope, days []string, window timeslot.Interval) ([]model.Booking, []DayAvailability, error) {
	byDay := make(map[string][]model.Booking, len(days))
	var all []model.Booking
	for _, day := range days {
		bookings, err := r.checker.ConfirmedInScope(ctx, scope, day)
		if err != nil {
			return nil, nil, err
		}
		byDay[day] = bookings
		all = append(all, bookings...)
	}

	view := make([]DayAvailability, 0, len(days))
	for _, day := range days {
		occupied := r.foldOccupied(byDay[day])
		view = append(view, DayAvailability{
			Date:  day,
			Slots: buildDaySlots(window, occupied),
		})
	}
	return all, view, nil
}

// foldOccupied merges a start-sorted confirmed booking list into occupied
// spans. Overlap is already impossible among confirmed bookings, so only exact
// touching can collapse, and only under the merge policy.
func (r *Reconciler) foldOccupied(bookings []model.Booking) []timeslot.Interval {
	var spans []timeslot.Interval
	for _, b := range bookings {
		iv := timeslot.Interval{Start: b.StartTime, End: b.EndTime}
		if len(spans) > 0 {
			last := &spans[len(spans)-1]
			if iv.Start < last.End || (r.mergeTouching && iv.Start == last.End) {
				if iv.End > last.End {
					last.End = iv.End
				}
				continue
			}
		}
		spans = append(spans, iv)
	}
	return spans
}

// buildDaySlots complements occupied spans against the open-hours window,
// producing the interleaved free/occupied timeline for one day.
func buildDaySlots(window timeslot.Interval, occupied []timeslot.Interval) []Slot {
	slots := make([]Slot, 0, 2*len(occupied)+1)
	cursor := window.Start
	for _, occ := range occupied {
		if occ.End <= window.Start || occ.Start >= window.End {
			continue
		}
		start, end := occ.Start, occ.End
		if start < window.Start {
			start = window.Start
		}
		if end > window.End {
			end = window.End
		}
		if cursor < start {
			slots = append(slots, Slot{StartTime: cursor, EndTime: start, IsAvailable: true})
		}
		slots = append(slots, Slot{StartTime: start, EndTime: end, IsAvailable: false})
		cursor = end
	}
	if cursor < window.End {
		slots = append(slots, Slot{StartTime: cursor, EndTime: window.End, IsAvailable: true})
	}
	return slots
}

// coversMoment reports whether any confirmed booking on date contains the
// given clock time.
func coversMoment(bookings []model.Booking, date, clock string) bool {
	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		iv := timeslot.Interval{Start: b.StartTime, End: b.EndTime}
		if iv.Contains(clock) {
			return true
		}
	}
	return false
}
