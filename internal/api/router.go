package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"campus-booking-backend/config"
	"campus-booking-backend/internal/booking"
	"campus-booking-backend/internal/mw"
	"campus-booking-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	policy := booking.ScopePolicy(cfg.Booking.ConflictScope)
	manager := booking.NewManager(s, policy, booking.RealClock{})
	reconciler := booking.NewReconciler(s, manager.Checker(), booking.RealClock{}, cfg.Booking.MergeTouchingSlots)
	hours := booking.OpenHours{Start: cfg.Booking.OpenHours.Start, End: cfg.Booking.OpenHours.End}

	handler := NewHandler(s, manager, reconciler, hours)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, cfg.Server.RequestIPHeader)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/bookings", handler.CreateBooking)
		api.GET("/bookings", handler.ListBookings)
		api.GET("/bookings/:id", handler.GetBooking)
		api.PATCH("/bookings/:id", handler.UpdateBooking)
		api.DELETE("/bookings/:id", handler.CancelBooking)

		api.GET("/facilities", handler.ListFacilities)
		api.POST("/facilities", handler.CreateFacility)
		api.GET("/facilities/:facility_id", handler.GetFacility)

		// Availability reads are recomputed per request; the response cache
		// bounds the cost of dashboard polling.
		api.GET("/facilities/:facility_id/availability", caching, handler.GetAvailability)
		api.GET("/facilities/:facility_id/check", handler.CheckAvailability)
	}

	return r
}
