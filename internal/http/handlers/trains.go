package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/services"
)

// price is accepted for compatibility but the stored fare always comes from inventory.
type trainBookingRequest struct {
	TrainID       string  `json:"train_id" binding:"required"`
	Price         float64 `json:"price"`
	FromStation   string  `json:"from_station"`
	ToStation     string  `json:"to_station"`
	TravelDate    string  `json:"travel_date" binding:"required"`
	PassengerName string  `json:"passenger_name" binding:"required"`
}

// SearchTrains GET /api/trains/search?from=&to=&date=
func (h *Handler) SearchTrains(c *gin.Context) {
	trains, err := h.inventory(c).SearchTrains(c.Request.Context(), c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

// BookTrain POST /api/trains/book
func (h *Handler) BookTrain(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req trainBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := h.bookings(c).BookTrain(c.Request.Context(), user.UserID, services.TrainBookingInput{
		TrainID:       req.TrainID,
		FromStation:   req.FromStation,
		ToStation:     req.ToStation,
		TravelDate:    req.TravelDate,
		PassengerName: req.PassengerName,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Train booked successfully", "booking": booking})
}

// GetTrainBookingByPNR GET /api/trains/pnr/:pnr
func (h *Handler) GetTrainBookingByPNR(c *gin.Context) {
	booking, err := h.bookings(c).GetTrainByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
