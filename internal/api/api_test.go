package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-booking-backend/config"
	"campus-booking-backend/internal/model"
	"campus-booking-backend/internal/store"
)

// setupRouter builds the full router over an isolated in-memory database with
// one seeded facility (id 1, rooms 1 and 2).
func setupRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Facility{}, &model.Room{}, &model.Booking{}))

	require.NoError(t, db.Create(&model.Facility{
		ID:   1,
		Name: "Main Hall",
		Rooms: []model.Room{
			{ID: 1, Name: "Conference Room", Capacity: 40},
			{ID: 2, Name: "Seminar Room", Capacity: 15},
		},
	}).Error)

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	// The response cache would mask writes happening between two identical
	// GETs inside one test, and the per-IP limiter would throttle tests that
	// fire several requests under one client key.
	cfg.Server.CacheTTLSeconds = 1
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	s := store.NewGormStore(db)
	return NewRouter(s, cfg), s
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBooking(t *testing.T, w *httptest.ResponseRecorder) model.Booking {
	t.Helper()
	var b model.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

// The router throttles per client key, so test setups raise the configured
// limits well above what a single test fires.
func TestRouterRateLimiting(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:ratelimit-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Facility{}, &model.Room{}, &model.Booking{}))

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Server.RateLimitPerSec = 0.01
	cfg.Server.RateLimitBurst = 1

	router := NewRouter(store.NewGormStore(db), cfg)

	w := doJSON(t, router, http.MethodGet, "/api/facilities", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/facilities", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
