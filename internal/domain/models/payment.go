package models

import "time"

// Payment is one gateway order and its verification outcome.
type Payment struct {
	ID          int64          `json:"id"`
	OrderID     string         `json:"order_id"`
	PaymentID   string         `json:"payment_id,omitempty"`
	UserID      int64          `json:"user_id,omitempty"`
	BookingType string         `json:"booking_type,omitempty"`
	BookingID   int64          `json:"booking_id,omitempty"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Method      string         `json:"method,omitempty"`
	Receipt     string         `json:"receipt,omitempty"`
	Notes       map[string]any `json:"notes,omitempty"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Order is the gateway's view of an intended charge. Amount is in minor units.
type Order struct {
	ID       string         `json:"id"`
	Entity   string         `json:"entity,omitempty"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt,omitempty"`
	Status   string         `json:"status,omitempty"`
	Notes    map[string]any `json:"notes,omitempty"`
}
