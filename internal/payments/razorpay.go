package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

// Gateway is the remote payment provider as seen by the payment service.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (models.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	VerifyWebhook(body []byte, signature string) bool
	KeyID() string
}

type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]any
}

// Client talks to the Razorpay orders API over plain HTTPS with basic auth.
type Client struct {
	keyID         string
	secret        string
	webhookSecret string
	baseURL       string
	http          *http.Client
}

func NewClient(keyID, secret, webhookSecret, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		keyID:         keyID,
		secret:        secret,
		webhookSecret: webhookSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: timeout},
	}
}

func (c *Client) KeyID() string { return c.keyID }

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (models.Order, error) {
	if c.keyID == "" || c.secret == "" {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: errors.New("gateway credentials not configured")}
	}
	if req.AmountMinor <= 0 {
		return models.Order{}, domain.ValidationError{Field: "amount", Msg: "amount must be greater than zero"}
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}
	notes := req.Notes
	if notes == nil {
		notes = map[string]any{}
	}

	body, err := json.Marshal(map[string]any{
		"amount":   req.AmountMinor,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	})
	if err != nil {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: err}
	}
	httpReq.SetBasicAuth(c.keyID, c.secret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return models.Order{}, domain.GatewayError{
			Op:  "create order",
			Err: fmt.Errorf("razorpay: %s: %s", resp.Status, strings.TrimSpace(string(msg))),
		}
	}

	var out models.Order
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: err}
	}
	if out.ID == "" {
		return models.Order{}, domain.GatewayError{Op: "create order", Err: errors.New("razorpay: empty order id")}
	}
	return out, nil
}

// VerifySignature checks hex(HMAC-SHA256(secret, orderID|paymentID)).
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyHMAC(c.secret, orderID+"|"+paymentID, signature)
}

// VerifyWebhook checks the X-Razorpay-Signature header against the raw body.
func (c *Client) VerifyWebhook(body []byte, signature string) bool {
	if c.webhookSecret == "" {
		return false
	}
	return VerifyHMAC(c.webhookSecret, string(body), signature)
}

// Sign returns the hex HMAC-SHA256 of payload.
func Sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC compares in constant time. An empty secret or signature never matches.
func VerifyHMAC(secret, payload, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}
