package model

import "time"

// BookingStatus is the lifecycle state of a booking. Only confirmed bookings
// participate in conflict detection.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the recognized statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking in state s may move to state to.
// Transitions are monotone: pending -> confirmed|cancelled, confirmed ->
// cancelled. Cancelled is terminal; the no-op cancelled -> cancelled is allowed
// so that cancellation stays idempotent.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	if s == to {
		return true
	}
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	}
	return false
}

// BookingType classifies what a booking is for. The engine treats it as opaque
// beyond validation.
type BookingType string

const (
	TypeAcademic BookingType = "academic"
	TypeEvent    BookingType = "event"
	TypeOther    BookingType = "other"
)

// Valid reports whether t is one of the recognized booking types.
func (t BookingType) Valid() bool {
	switch t {
	case TypeAcademic, TypeEvent, TypeOther:
		return true
	}
	return false
}

// Booking represents a time-bounded reservation of a facility or of one of its
// rooms. Date and times are naive local wall-clock strings ("2006-01-02",
// "15:04") normalized by the caller; lexical order matches chronological order
// for both, so the engine compares them as strings.
type Booking struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	FacilityID  int64         `gorm:"index:idx_bookings_scope;not null" json:"facilityId"`
	RoomID      *int64        `gorm:"index:idx_bookings_scope" json:"roomId,omitempty"`
	Date        string        `gorm:"index:idx_bookings_scope;size:10;not null" json:"date"`
	StartTime   string        `gorm:"size:5;not null" json:"startTime"`
	EndTime     string        `gorm:"size:5;not null" json:"endTime"`
	Purpose     string        `gorm:"size:512" json:"purpose"`
	BookedBy    string        `gorm:"size:128" json:"bookedBy"`
	BookingType BookingType   `gorm:"size:16;not null" json:"bookingType"`
	Status      BookingStatus `gorm:"size:16;not null;index:idx_bookings_scope" json:"status"`
	Reference   string        `gorm:"size:128" json:"reference,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time     `json:"-"`

	// Associations
	Facility Facility `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// SameRoomScope reports whether b and other reserve the same room scope under a
// shared facility: equal room ids, or both reserving the whole facility.
func (b *Booking) SameRoomScope(roomID *int64) bool {
	if b.RoomID == nil || roomID == nil {
		return b.RoomID == nil && roomID == nil
	}
	return *b.RoomID == *roomID
}
