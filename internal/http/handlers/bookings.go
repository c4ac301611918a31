package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/services"
)

type hotelBookingRequest struct {
	HotelID  int64  `json:"hotel_id" binding:"required,gt=0"`
	Checkin  string `json:"checkin" binding:"required"`
	Checkout string `json:"checkout" binding:"required"`
	Guests   int    `json:"guests" binding:"required,gte=1"`
}

func (r hotelBookingRequest) input() services.HotelBookingInput {
	return services.HotelBookingInput{
		HotelID:  r.HotelID,
		Checkin:  r.Checkin,
		Checkout: r.Checkout,
		Guests:   r.Guests,
	}
}

// ListMyBookings GET /api/hotel-booking returns the caller's bookings by mode.
func (h *Handler) ListMyBookings(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.bookings(c).ListForUser(c.Request.Context(), user.UserID))
}

// QuoteHotel POST /api/hotel-booking/calculate
func (h *Handler) QuoteHotel(c *gin.Context) {
	if _, ok := mustUser(c); !ok {
		return
	}
	var req hotelBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	quote, err := h.bookings(c).QuoteHotel(c.Request.Context(), req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// BookHotel POST /api/hotel-booking
func (h *Handler) BookHotel(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req hotelBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	booking, err := h.bookings(c).BookHotel(c.Request.Context(), user.UserID, req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Hotel booked successfully", "booking": booking})
}
