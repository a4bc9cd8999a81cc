package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-booking-backend/internal/booking"
)

func TestGetAvailability(t *testing.T) {
	router, _ := setupRouter(t)

	payload := map[string]any{
		"facilityId": 1, "date": "2026-09-10",
		"startTime": "12:00", "endTime": "13:00", "status": "confirmed",
	}
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/bookings", payload).Code)

	w := doJSON(t, router, http.MethodGet, "/api/facilities/1/availability?from=2026-09-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view booking.FacilityAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	assert.Equal(t, int64(1), view.FacilityID)
	require.Len(t, view.Days, 1)
	assert.Equal(t, []booking.Slot{
		{StartTime: "08:00", EndTime: "12:00", IsAvailable: true},
		{StartTime: "12:00", EndTime: "13:00", IsAvailable: false},
		{StartTime: "13:00", EndTime: "18:00", IsAvailable: true},
	}, view.Days[0].Slots)
	// Both rooms are untouched by the whole-facility booking.
	require.Len(t, view.Rooms, 2)
	assert.Len(t, view.Rooms[0].Days[0].Slots, 1)
}

func TestGetAvailability_Errors(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/facilities/1/availability", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/facilities/99/availability?from=2026-09-10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/facilities/1/availability?from=2026-09-12&to=2026-09-10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAvailability(t *testing.T) {
	router, _ := setupRouter(t)

	payload := map[string]any{
		"facilityId": 1, "roomId": 1, "date": "2026-09-10",
		"startTime": "10:00", "endTime": "11:00", "status": "confirmed",
	}
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/bookings", payload).Code)

	w := doJSON(t, router, http.MethodGet, "/api/facilities/1/check?room_id=1&date=2026-09-10&start=10:30&end=11:30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res booking.CheckResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.IsAvailable)
	require.Len(t, res.Conflicts, 1)

	// The whole-facility scope is independent of the room booking.
	w = doJSON(t, router, http.MethodGet, "/api/facilities/1/check?date=2026-09-10&start=10:30&end=11:30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.IsAvailable)

	w = doJSON(t, router, http.MethodGet, "/api/facilities/1/check?date=2026-09-10&start=11:00&end=10:00", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown scopes 404 like the availability view does.
	w = doJSON(t, router, http.MethodGet, "/api/facilities/99/check?date=2026-09-10&start=10:30&end=11:30", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/facilities/1/check?room_id=42&date=2026-09-10&start=10:30&end=11:30", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacilityDirectory(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/facilities", map[string]any{
		"name": "Sports Complex",
		"rooms": []map[string]any{
			{"name": "Court 1", "capacity": 20},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created FacilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.TotalRooms)

	w = doJSON(t, router, http.MethodGet, "/api/facilities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []FacilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = doJSON(t, router, http.MethodGet, "/api/facilities/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
