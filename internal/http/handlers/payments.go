package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain"
	"travelapp/internal/http/middleware"
	"travelapp/internal/services"
)

const maxWebhookBody = 1 << 20

type createOrderRequest struct {
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Notes       map[string]any `json:"notes"`
	BookingType string         `json:"booking_type"`
	BookingID   int64          `json:"booking_id"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CreatePaymentOrder POST /api/payment/orders
func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	in := services.CreateOrderInput{
		Amount:         req.Amount,
		Currency:       req.Currency,
		Notes:          req.Notes,
		BookingType:    req.BookingType,
		BookingID:      req.BookingID,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		in.UserID = user.UserID
	}

	svc := h.payments(c)
	order, err := svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondDomainError(c, err, gin.H{"success": false})
		return
	}
	body := gin.H{"success": true, "order": order}
	if svc.Gateway != nil {
		body["key"] = svc.Gateway.KeyID()
	}
	c.JSON(http.StatusOK, body)
}

// GetPaymentOrder GET /api/payment/orders/:orderId
func (h *Handler) GetPaymentOrder(c *gin.Context) {
	p, err := h.payments(c).GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"payment":    p,
		"flow_state": domain.FlowState(p.Status),
	})
}

// VerifyPayment POST /api/payment/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	ok, err := h.payments(c).VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondDomainError(c, err, gin.H{"success": false})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid signature"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
}

// PaymentWebhook POST /api/payment/webhook
func (h *Handler) PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "could not read body", nil)
		return
	}
	event, err := h.payments(c).HandleWebhook(c.Request.Context(), body, c.GetHeader("X-Razorpay-Signature"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "event": event})
}
