package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-booking-backend/internal/model"
)

// FacilityResponse represents the API response for a single facility.
type FacilityResponse struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	TotalRooms int          `json:"totalRooms"`
	Rooms      []model.Room `json:"rooms"`
}

func facilityResponse(f model.Facility) FacilityResponse {
	rooms := f.Rooms
	if rooms == nil {
		rooms = []model.Room{}
	}
	return FacilityResponse{
		ID:         f.ID,
		Name:       f.Name,
		TotalRooms: len(rooms),
		Rooms:      rooms,
	}
}

// ListFacilities handles GET /api/facilities.
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.store.ListFacilities(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve facilities"})
		return
	}

	responses := make([]FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		responses = append(responses, facilityResponse(f))
	}
	c.JSON(http.StatusOK, responses)
}

// GetFacility handles GET /api/facilities/:facility_id.
func (h *Handler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("facility_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid facility ID"})
		return
	}

	f, err := h.store.GetFacility(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "facility not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve facility"})
		}
		return
	}
	c.JSON(http.StatusOK, facilityResponse(f))
}

type createFacilityRequest struct {
	Name  string `json:"name" binding:"required"`
	Rooms []struct {
		Name     string `json:"name" binding:"required"`
		Capacity int    `json:"capacity"`
	} `json:"rooms"`
}

// CreateFacility handles POST /api/facilities. Facility administration lives
// with the host application; this is the minimal directory write the booking
// engine needs something to book against.
func (h *Handler) CreateFacility(c *gin.Context) {
	var req createFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fac := model.Facility{Name: req.Name}
	for _, r := range req.Rooms {
		fac.Rooms = append(fac.Rooms, model.Room{Name: r.Name, Capacity: r.Capacity})
	}

	if err := h.store.CreateFacility(c.Request.Context(), &fac); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, facilityResponse(fac))
}
