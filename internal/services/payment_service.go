package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"travelapp/internal/cache"
	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/payments"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

// PaymentService drives the order -> verify flow against the gateway and
// keeps the payments table in step with it.
type PaymentService struct {
	Store     *intdb.Store
	Payments  repositories.PaymentRepository
	Gateway   payments.Gateway
	Orders    *cache.OrderCache
	RequestID string
}

type CreateOrderInput struct {
	Amount         float64
	Currency       string
	Notes          map[string]any
	BookingType    string
	BookingID      int64
	UserID         int64
	IdempotencyKey string
}

// CreateOrder converts the amount to minor units, asks the gateway for an
// order and records it as pending.
func (s PaymentService) CreateOrder(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	if in.Amount <= 0 {
		return models.Order{}, domain.ValidationError{Field: "amount", Msg: "amount must be greater than zero"}
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "INR"
	}
	if len(currency) != 3 {
		return models.Order{}, domain.ValidationError{Field: "currency", Msg: "currency must be a 3-letter code"}
	}
	in.BookingType = strings.ToLower(strings.TrimSpace(in.BookingType))
	if in.BookingType != "" && !domain.IsBookingMode(in.BookingType) {
		return models.Order{}, domain.ValidationError{Field: "booking_type", Msg: "unknown booking type"}
	}
	minor := utils.ToMinorUnits(in.Amount)
	if minor <= 0 {
		return models.Order{}, domain.ValidationError{Field: "amount", Msg: "amount must be greater than zero"}
	}

	key := orderCacheKey(in, currency, minor)
	if cached, ok, err := s.Orders.Get(ctx, key); err != nil {
		utils.LogError(s.RequestID, "payment", "create_order", "idempotency lookup failed", err)
	} else if ok {
		utils.LogEvent(s.RequestID, "payment", "create_order", "replayed order_id="+cached.ID)
		return cached, nil
	}

	order, err := s.Gateway.CreateOrder(ctx, payments.OrderRequest{
		AmountMinor: minor,
		Currency:    currency,
		Receipt:     "rcpt_" + uuid.NewString()[:8],
		Notes:       in.Notes,
	})
	if err != nil {
		return models.Order{}, err
	}

	p := models.Payment{
		OrderID:     order.ID,
		UserID:      in.UserID,
		BookingType: in.BookingType,
		BookingID:   in.BookingID,
		Amount:      utils.FromMinorUnits(order.Amount),
		Currency:    order.Currency,
		Receipt:     order.Receipt,
		Notes:       in.Notes,
		Status:      domain.PaymentPending,
	}
	if err := s.Payments.Create(ctx, &p); err != nil {
		// the gateway order stays unpaid and expires on its own
		return models.Order{}, domain.InternalError{Msg: "could not record payment order", Err: err}
	}

	if err := s.Orders.Set(ctx, key, order); err != nil {
		utils.LogError(s.RequestID, "payment", "create_order", "idempotency store failed", err)
	}
	utils.LogEvent(s.RequestID, "payment", "create_order", fmt.Sprintf("order_id=%s amount_minor=%d", order.ID, order.Amount))
	return order, nil
}

// orderCacheKey scopes an Idempotency-Key to the caller and the exact request, so a reused
// key with another amount or by another user never replays a foreign order.
func orderCacheKey(in CreateOrderInput, currency string, minor int64) string {
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		return ""
	}
	return fmt.Sprintf("u%d:%s:%d:%s:%d:%s", in.UserID, currency, minor, in.BookingType, in.BookingID, key)
}

// VerifyPayment checks the checkout signature and persists the outcome either way.
func (s PaymentService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	orderID = strings.TrimSpace(orderID)
	paymentID = strings.TrimSpace(paymentID)
	signature = strings.TrimSpace(signature)
	if orderID == "" || paymentID == "" || signature == "" {
		return false, domain.ValidationError{Msg: "razorpay_order_id, razorpay_payment_id and razorpay_signature are required"}
	}

	ok := s.Gateway.VerifySignature(orderID, paymentID, signature)
	status := domain.PaymentFailed
	if ok {
		status = domain.PaymentSuccess
	}

	// a bad signature records the failure without the caller's ids
	storedPaymentID, storedSignature := "", ""
	if ok {
		storedPaymentID, storedSignature = paymentID, signature
	}
	err := s.Store.WithTx(ctx, func(tx *sql.Tx) error {
		repo := s.Payments.InTx(tx)
		current, err := repo.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		// a verified payment is terminal
		if current.Status == domain.PaymentSuccess {
			return nil
		}
		_, err = repo.UpdateResult(ctx, orderID, storedPaymentID, storedSignature, "", status)
		return err
	})
	if err != nil {
		if !domain.IsNotFound(err) {
			return false, domain.InternalError{Msg: "could not record payment result", Err: err}
		}
		utils.LogEvent(s.RequestID, "payment", "verify", "no stored order for order_id="+orderID)
	}
	utils.LogEvent(s.RequestID, "payment", "verify", fmt.Sprintf("order_id=%s status=%s", orderID, status))
	return ok, nil
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Method  string `json:"method"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// HandleWebhook applies a signed gateway event. Unknown events are ignored.
func (s PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) (string, error) {
	if !s.Gateway.VerifyWebhook(body, signature) {
		return "", domain.ValidationError{Field: "signature", Msg: "invalid webhook signature"}
	}
	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", domain.ValidationError{Msg: "invalid webhook payload", Err: err}
	}

	var status string
	switch ev.Event {
	case "payment.captured", "order.paid":
		status = domain.PaymentSuccess
	case "payment.failed":
		status = domain.PaymentFailed
	default:
		utils.LogEvent(s.RequestID, "payment", "webhook", "ignored event="+ev.Event)
		return ev.Event, nil
	}

	pay := ev.Payload.Payment.Entity
	orderID := pay.OrderID
	if orderID == "" {
		orderID = ev.Payload.Order.Entity.ID
	}
	if orderID == "" {
		return "", domain.ValidationError{Msg: "webhook event carries no order id"}
	}

	err := s.Store.WithTx(ctx, func(tx *sql.Tx) error {
		repo := s.Payments.InTx(tx)
		current, err := repo.GetByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		// a verified payment is terminal
		if current.Status == domain.PaymentSuccess {
			return nil
		}
		_, err = repo.UpdateResult(ctx, orderID, pay.ID, "", pay.Method, status)
		return err
	})
	if err != nil {
		if domain.IsNotFound(err) {
			utils.LogEvent(s.RequestID, "payment", "webhook", "unknown order_id="+orderID)
			return ev.Event, nil
		}
		return "", domain.InternalError{Msg: "could not apply webhook", Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "webhook", fmt.Sprintf("event=%s order_id=%s status=%s", ev.Event, orderID, status))
	return ev.Event, nil
}

func (s PaymentService) GetOrder(ctx context.Context, orderID string) (models.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return models.Payment{}, domain.ValidationError{Field: "orderId", Msg: "orderId is required"}
	}
	p, err := s.Payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return models.Payment{}, wrapLookup(err, "payment lookup failed")
	}
	return p, nil
}
