package handlers

import (
	"github.com/gin-gonic/gin"

	intdb "travelapp/internal/db"
	"travelapp/internal/http/middleware"
	"travelapp/internal/services"
)

// Handler holds the services built once at startup. Each request works on a
// copy stamped with its request id.
type Handler struct {
	Store     *intdb.Store
	Auth      services.AuthService
	Inventory services.InventoryService
	Bookings  services.BookingService
	Payments  services.PaymentService
	Docs      services.DocsService
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	s := h.Auth
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) inventory(c *gin.Context) services.InventoryService {
	s := h.Inventory
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) bookings(c *gin.Context) services.BookingService {
	s := h.Bookings
	s.RequestID = middleware.GetRequestID(c)
	s.Inventory.RequestID = s.RequestID
	return s
}

func (h *Handler) payments(c *gin.Context) services.PaymentService {
	s := h.Payments
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	s := h.Docs
	s.RequestID = middleware.GetRequestID(c)
	s.Bookings = h.bookings(c)
	return s
}
