package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-booking-backend/internal/booking"
	"campus-booking-backend/internal/model"
)

type createBookingRequest struct {
	FacilityID  int64  `json:"facilityId" binding:"required"`
	RoomID      *int64 `json:"roomId"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Purpose     string `json:"purpose"`
	BookedBy    string `json:"bookedBy"`
	BookingType string `json:"bookingType"`
	Status      string `json:"status"`
	Reference   string `json:"reference"`
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.manager.Create(c.Request.Context(), booking.CreateRequest{
		FacilityID:  req.FacilityID,
		RoomID:      req.RoomID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Purpose:     req.Purpose,
		BookedBy:    req.BookedBy,
		BookingType: model.BookingType(req.BookingType),
		Status:      model.BookingStatus(req.Status),
		Reference:   req.Reference,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

type updateBookingRequest struct {
	FacilityID  *int64  `json:"facilityId"`
	RoomID      *int64  `json:"roomId"`
	ClearRoom   bool    `json:"clearRoom"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Purpose     *string `json:"purpose"`
	BookedBy    *string `json:"bookedBy"`
	BookingType *string `json:"bookingType"`
	Status      *string `json:"status"`
	Reference   *string `json:"reference"`
}

// UpdateBooking handles PATCH /api/bookings/:id.
func (h *Handler) UpdateBooking(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := booking.UpdateRequest{
		FacilityID: req.FacilityID,
		RoomID:     req.RoomID,
		ClearRoom:  req.ClearRoom,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Purpose:    req.Purpose,
		BookedBy:   req.BookedBy,
		Reference:  req.Reference,
	}
	if req.BookingType != nil {
		t := model.BookingType(*req.BookingType)
		patch.BookingType = &t
	}
	if req.Status != nil {
		s := model.BookingStatus(*req.Status)
		patch.Status = &s
	}

	b, err := h.manager.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/:id. Cancellation is idempotent:
// deleting an already-cancelled booking succeeds and returns it unchanged.
func (h *Handler) CancelBooking(c *gin.Context) {
	b, err := h.manager.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /api/bookings?facility_id=&room_id=&from=&to=.
func (h *Handler) ListBookings(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Query("facility_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "facility_id is required"})
		return
	}

	var roomID *int64
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		roomID = &id
	}

	bookings, err := h.manager.ListForScope(c.Request.Context(), facilityID, roomID, c.Query("from"), c.Query("to"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}
