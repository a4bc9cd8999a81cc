package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetAvailability handles GET /api/facilities/:facility_id/availability.
// Without from/to the view covers the single day queried as "from", so both a
// day view and a range view go through the same handler.
func (h *Handler) GetAvailability(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("facility_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid facility ID"})
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from date is required"})
		return
	}
	if to == "" {
		to = from
	}

	view, err := h.reconciler.ComputeAvailability(c.Request.Context(), facilityID, from, to, h.openHours)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CheckAvailability handles GET /api/facilities/:facility_id/check, answering
// whether a single date+window is free and which bookings block it when not.
func (h *Handler) CheckAvailability(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("facility_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid facility ID"})
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

	result, err := h.reconciler.CheckAvailability(
		c.Request.Context(),
		facilityID,
		roomID,
		c.Query("date"),
		c.Query("start"),
		c.Query("end"),
	)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
