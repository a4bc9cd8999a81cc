package store

import "campus-booking-backend/internal/model"

// BookingFilter narrows a booking scan. Zero values mean "do not filter on
// this field".
type BookingFilter struct {
	FacilityID int64

	// ScopeRoom restricts the scan to a single room scope. When set, a nil
	// RoomID matches only whole-facility bookings; a non-nil RoomID matches
	// only that room. When unset, bookings for every scope under the facility
	// are returned.
	ScopeRoom bool
	RoomID    *int64

	// Date matches a single day; DateFrom/DateTo match an inclusive range.
	Date     string
	DateFrom string
	DateTo   string

	Statuses []model.BookingStatus

	// ForUpdate locks the matched rows for the duration of the surrounding
	// transaction. Only effective on Postgres; SQLite serializes writers on
	// its own.
	ForUpdate bool
}
