package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/services"
)

type busBookingRequest struct {
	BusID          int64  `json:"bus_id" binding:"required,gt=0"`
	TravelDate     string `json:"travel_date" binding:"required"`
	PassengerName  string `json:"passenger_name" binding:"required"`
	BoardingStopID int64  `json:"boarding_stop_id"`
}

// SearchBuses GET /api/buses/search?from=&to=&date=
func (h *Handler) SearchBuses(c *gin.Context) {
	buses, err := h.inventory(c).SearchBuses(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buses": buses})
}

// ListStops GET /api/buses/:busId/stops
func (h *Handler) ListStops(c *gin.Context) {
	busID, ok := parseIDParam(c, "busId")
	if !ok {
		return
	}
	stops, err := h.inventory(c).ListStops(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops})
}

// BookBus POST /api/buses/book
func (h *Handler) BookBus(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req busBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := h.bookings(c).BookBus(c.Request.Context(), user.UserID, services.BusBookingInput{
		BusID:          req.BusID,
		TravelDate:     req.TravelDate,
		PassengerName:  req.PassengerName,
		BoardingStopID: req.BoardingStopID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Bus booked successfully", "booking": booking})
}
