package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/store"
)

// newTestStore opens an isolated in-memory SQLite database seeded with one
// facility that has two rooms (ids 1 and 2) and one room-less facility (id 2).
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:booking-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Facility{}, &model.Room{}, &model.Booking{}))

	require.NoError(t, db.Create(&model.Facility{
		ID:   1,
		Name: "Science Block",
		Rooms: []model.Room{
			{ID: 1, Name: "Lab A", Capacity: 30},
			{ID: 2, Name: "Lab B", Capacity: 24},
		},
	}).Error)
	require.NoError(t, db.Create(&model.Facility{ID: 2, Name: "Auditorium"}).Error)

	return store.NewGormStore(db)
}

// fixedClock pins "now" for availability and creation timestamps.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func roomRef(id int64) *int64 { return &id }

// seedBooking inserts a booking row directly, bypassing lifecycle validation.
func seedBooking(t *testing.T, s store.Store, b model.Booking) model.Booking {
	t.Helper()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.FacilityID == 0 {
		b.FacilityID = 1
	}
	if b.Date == "" {
		b.Date = "2026-09-10"
	}
	if b.BookingType == "" {
		b.BookingType = model.TypeOther
	}
	if b.Status == "" {
		b.Status = model.StatusConfirmed
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	}
	require.NoError(t, s.InsertBooking(context.Background(), &b))
	return b
}
