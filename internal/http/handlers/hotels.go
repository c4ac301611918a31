package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchHotels GET /api/hotels?city=
func (h *Handler) SearchHotels(c *gin.Context) {
	hotels, err := h.inventory(c).SearchHotels(c.Request.Context(), c.Query("city"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels})
}

// GetHotel GET /api/hotels/:id
func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	hotel, err := h.inventory(c).GetHotel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}
