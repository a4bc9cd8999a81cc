package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-booking-backend/internal/booking"
	"campus-booking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	manager    *booking.Manager
	reconciler *booking.Reconciler
	openHours  booking.OpenHours
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, m *booking.Manager, r *booking.Reconciler, hours booking.OpenHours) *Handler {
	return &Handler{
		store:      s,
		manager:    m,
		reconciler: r,
		openHours:  hours,
	}
}

// abortWithDomainError maps the engine's error taxonomy onto HTTP statuses.
// Conflicts carry the conflicting bookings so the caller can offer
// alternatives; unrecognized errors pass through as a generic failure.
func abortWithDomainError(c *gin.Context, err error) {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":               "requested window conflicts with existing confirmed bookings",
			"conflictingBookings": conflict.Conflicts,
		})
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrFacilityNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
