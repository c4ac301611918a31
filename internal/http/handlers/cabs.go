package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/services"
)

type cabBookingRequest struct {
	CabType    string  `json:"cab_type" binding:"required"`
	Pickup     string  `json:"pickup" binding:"required"`
	Drop       string  `json:"drop" binding:"required"`
	DistanceKm float64 `json:"distance_km" binding:"required,gt=0"`
	TravelDate string  `json:"travel_date" binding:"required"`
}

// ListCabTypes GET /api/cabs
func (h *Handler) ListCabTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cabs": h.inventory(c).CabTypes()})
}

// BookCab POST /api/cabs/book
func (h *Handler) BookCab(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req cabBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := h.bookings(c).BookCab(c.Request.Context(), user.UserID, services.CabBookingInput{
		CabType:    req.CabType,
		Pickup:     req.Pickup,
		Drop:       req.Drop,
		DistanceKm: req.DistanceKm,
		TravelDate: req.TravelDate,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cab booked successfully", "booking": booking})
}
