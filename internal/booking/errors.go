package booking

import (
	"errors"
	"fmt"

	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/timeslot"
)

// ErrInvalidInterval mirrors the timeslot sentinel so callers of this package
// can match interval failures without importing timeslot.
var ErrInvalidInterval = timeslot.ErrInvalidInterval

var (
	// ErrBookingNotFound is returned when a referenced booking id is unknown.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrFacilityNotFound is returned when a referenced facility id is unknown.
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrInvalidTransition is returned on an illegal status change, such as
	// resurrecting a cancelled booking.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ConflictError reports that a create or update would collide with existing
// confirmed bookings. Conflicts is ordered by start time so callers can
// present alternatives.
type ConflictError struct {
	Conflicts []model.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with %d confirmed booking(s)", len(e.Conflicts))
}
