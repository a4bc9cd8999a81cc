package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-booking-backend/internal/model"
)

// Store defines the keyed-collection contract the booking engine needs:
// insert, replace-by-id, and filtered scans over bookings, plus read access to
// the facility directory. Any transactional keyed store can back it.
type Store interface {
	DB() *gorm.DB

	// Transaction runs fn against a store bound to one database transaction.
	// The engine uses it to keep a conflict check and its write in a single
	// critical section.
	Transaction(ctx context.Context, fn func(Store) error) error

	InsertBooking(ctx context.Context, b *model.Booking) error
	ReplaceBooking(ctx context.Context, b *model.Booking) error
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	ListBookings(ctx context.Context, f BookingFilter) ([]model.Booking, error)

	GetFacility(ctx context.Context, id int64) (model.Facility, error)
	ListFacilities(ctx context.Context) ([]model.Facility, error)
	CreateFacility(ctx context.Context, fac *model.Facility) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) InsertBooking(ctx context.Context, b *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", b.ID, err)
	}
	return nil
}

func (s *gormStore) ReplaceBooking(ctx context.Context, b *model.Booking) error {
	res := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", b.ID).
		Select("*").Omit("id", "created_at").
		Updates(b)
	if res.Error != nil {
		return fmt.Errorf("failed to replace booking %s: %w", b.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormStore) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	var b model.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

func (s *gormStore) ListBookings(ctx context.Context, f BookingFilter) ([]model.Booking, error) {
	q := s.db.WithContext(ctx).Model(&model.Booking{})

	if f.FacilityID != 0 {
		q = q.Where("facility_id = ?", f.FacilityID)
	}
	if f.ScopeRoom {
		if f.RoomID == nil {
			q = q.Where("room_id IS NULL")
		} else {
			q = q.Where("room_id = ?", *f.RoomID)
		}
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.ForUpdate && s.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookings []model.Booking
	if err := q.Order("date ASC, start_time ASC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to scan bookings: %w", err)
	}
	return bookings, nil
}

// preloadRooms orders room associations so availability views list rooms
// deterministically.
func preloadRooms(db *gorm.DB) *gorm.DB {
	return db.Order("rooms.id ASC")
}

func (s *gormStore) GetFacility(ctx context.Context, id int64) (model.Facility, error) {
	var fac model.Facility
	if err := s.db.WithContext(ctx).Preload("Rooms", preloadRooms).First(&fac, id).Error; err != nil {
		return model.Facility{}, err
	}
	return fac, nil
}

func (s *gormStore) ListFacilities(ctx context.Context) ([]model.Facility, error) {
	var facs []model.Facility
	if err := s.db.WithContext(ctx).Preload("Rooms", preloadRooms).Order("id ASC").Find(&facs).Error; err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return facs, nil
}

func (s *gormStore) CreateFacility(ctx context.Context, fac *model.Facility) error {
	if err := s.db.WithContext(ctx).Create(fac).Error; err != nil {
		return fmt.Errorf("failed to create facility %q: %w", fac.Name, err)
	}
	return nil
}
