package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/store"
	"campus-booking-backend/internal/timeslot"
)

// Manager owns the booking lifecycle: create, update, cancel. Writes that can
// violate the no-overlap invariant run their conflict check and their store
// mutation inside one store transaction.
type Manager struct {
	store   store.Store
	checker *Checker
	clock   Clock
}

// NewManager creates a lifecycle manager over the given store.
func NewManager(s store.Store, policy ScopePolicy, clock Clock) *Manager {
	if clock == nil {
		clock = RealClock{}
	}
	return &Manager{
		store:   s,
		checker: NewChecker(s, policy),
		clock:   clock,
	}
}

// Checker exposes the manager's conflict checker for read-only callers.
func (m *Manager) Checker() *Checker {
	return m.checker
}

// CreateRequest carries the caller-supplied fields for a new booking.
type CreateRequest struct {
	FacilityID  int64
	RoomID      *int64
	Date        string
	StartTime   string
	EndTime     string
	Purpose     string
	BookedBy    string
	BookingType model.BookingType
	Status      model.BookingStatus
	Reference   string
}

// Create validates the request, enforces the conflict invariant when the
// initial status is confirmed, and stores the booking.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*model.Booking, error) {
	iv, err := timeslot.New(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !timeslot.ValidDate(req.Date) {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInterval, req.Date)
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if status == model.StatusCancelled || !status.Valid() {
		return nil, fmt.Errorf("%w: cannot create a booking with status %q", ErrInvalidTransition, req.Status)
	}

	bookingType := req.BookingType
	if bookingType == "" {
		bookingType = model.TypeOther
	}
	if !bookingType.Valid() {
		return nil, fmt.Errorf("unrecognized booking type %q", req.BookingType)
	}

	if err := m.validateScope(ctx, req.FacilityID, req.RoomID); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:          uuid.NewString(),
		FacilityID:  req.FacilityID,
		RoomID:      req.RoomID,
		Date:        req.Date,
		StartTime:   iv.Start,
		EndTime:     iv.End,
		Purpose:     req.Purpose,
		BookedBy:    req.BookedBy,
		BookingType: bookingType,
		Status:      status,
		Reference:   req.Reference,
		CreatedAt:   m.clock.Now().UTC(),
	}

	err = m.store.Transaction(ctx, func(tx store.Store) error {
		if b.Status == model.StatusConfirmed {
			scope := Scope{FacilityID: b.FacilityID, RoomID: b.RoomID}
			conflicts, err := m.checker.WithStore(tx).FindConflictsLocked(ctx, scope, b.Date, iv, "")
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}
		return tx.InsertBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateRequest is a partial patch: nil fields are left unchanged. ClearRoom
// moves the booking to the whole-facility scope; it wins over RoomID.
type UpdateRequest struct {
	FacilityID  *int64
	RoomID      *int64
	ClearRoom   bool
	Date        *string
	StartTime   *string
	EndTime     *string
	Purpose     *string
	BookedBy    *string
	BookingType *model.BookingType
	Status      *model.BookingStatus
	Reference   *string
}

func (r UpdateRequest) changesScopeOrTime() bool {
	return r.FacilityID != nil || r.RoomID != nil || r.ClearRoom ||
		r.Date != nil || r.StartTime != nil || r.EndTime != nil
}

// Update merges the patch into an existing booking, re-running the conflict
// check when the patched booking is confirmed and its window, scope, or status
// changed. Cancelled bookings cannot be edited or resurrected.
func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (*model.Booking, error) {
	var updated *model.Booking
	err := m.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if b.Status == model.StatusCancelled {
			return fmt.Errorf("%w: booking %s is cancelled", ErrInvalidTransition, id)
		}

		enteredConfirmed := false
		if req.Status != nil {
			if !req.Status.Valid() {
				return fmt.Errorf("%w: unrecognized status %q", ErrInvalidTransition, *req.Status)
			}
			if !b.Status.CanTransition(*req.Status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, *req.Status)
			}
			enteredConfirmed = b.Status != model.StatusConfirmed && *req.Status == model.StatusConfirmed
			b.Status = *req.Status
		}

		if req.FacilityID != nil {
			b.FacilityID = *req.FacilityID
		}
		switch {
		case req.ClearRoom:
			b.RoomID = nil
		case req.RoomID != nil:
			b.RoomID = req.RoomID
		}
		if req.Date != nil {
			b.Date = *req.Date
		}
		if req.StartTime != nil {
			b.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			b.EndTime = *req.EndTime
		}
		if req.Purpose != nil {
			b.Purpose = *req.Purpose
		}
		if req.BookedBy != nil {
			b.BookedBy = *req.BookedBy
		}
		if req.BookingType != nil {
			if !req.BookingType.Valid() {
				return fmt.Errorf("unrecognized booking type %q", *req.BookingType)
			}
			b.BookingType = *req.BookingType
		}
		if req.Reference != nil {
			b.Reference = *req.Reference
		}

		iv, err := timeslot.New(b.StartTime, b.EndTime)
		if err != nil {
			return err
		}
		if !timeslot.ValidDate(b.Date) {
			return fmt.Errorf("%w: bad date %q", ErrInvalidInterval, b.Date)
		}
		if req.FacilityID != nil || req.RoomID != nil || req.ClearRoom {
			if err := m.validateScopeWith(ctx, tx, b.FacilityID, b.RoomID); err != nil {
				return err
			}
		}

		// Only a confirmed booking participates in the invariant, so the
		// re-check runs when the patched booking ends up confirmed and either
		// its scope/window moved or it just entered confirmed.
		if b.Status == model.StatusConfirmed && (req.changesScopeOrTime() || enteredConfirmed) {
			scope := Scope{FacilityID: b.FacilityID, RoomID: b.RoomID}
			conflicts, err := m.checker.WithStore(tx).FindConflictsLocked(ctx, scope, b.Date, iv, b.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}

		if err := tx.ReplaceBooking(ctx, &b); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		updated = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel moves a booking to cancelled. Cancelling an already-cancelled booking
// is a silent no-op returning the booking unchanged.
func (m *Manager) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	var cancelled *model.Booking
	err := m.store.Transaction(ctx, func(tx store.Store) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status == model.StatusCancelled {
			cancelled = &b
			return nil
		}
		b.Status = model.StatusCancelled
		if err := tx.ReplaceBooking(ctx, &b); err != nil {
			return err
		}
		cancelled = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Get returns a single booking by id.
func (m *Manager) Get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := m.store.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListForScope returns bookings for a facility sorted by (date, startTime).
// A non-nil roomID narrows to that room's scope; from/to bound the date range
// inclusively when non-empty.
func (m *Manager) ListForScope(ctx context.Context, facilityID int64, roomID *int64, from, to string) ([]model.Booking, error) {
	filter := store.BookingFilter{
		FacilityID: facilityID,
		DateFrom:   from,
		DateTo:     to,
	}
	if roomID != nil {
		filter.ScopeRoom = true
		filter.RoomID = roomID
	}
	return m.store.ListBookings(ctx, filter)
}

func (m *Manager) validateScope(ctx context.Context, facilityID int64, roomID *int64) error {
	return m.validateScopeWith(ctx, m.store, facilityID, roomID)
}

// validateScopeWith checks the facility exists and, when a room is named, that
// it belongs to the facility.
func (m *Manager) validateScopeWith(ctx context.Context, s store.Store, facilityID int64, roomID *int64) error {
	fac, err := s.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrFacilityNotFound, facilityID)
		}
		return err
	}
	if roomID == nil {
		return nil
	}
	for _, r := range fac.Rooms {
		if r.ID == *roomID {
			return nil
		}
	}
	return fmt.Errorf("%w: facility %d has no room %d", ErrFacilityNotFound, facilityID, *roomID)
}
