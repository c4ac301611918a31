package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	intdb "travelapp/internal/db"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
)

type PaymentRepository struct {
	base
}

func NewPaymentRepository(store *intdb.Store) PaymentRepository {
	return PaymentRepository{base{Store: store}}
}

func (r PaymentRepository) InTx(tx *sql.Tx) PaymentRepository {
	r.Tx = tx
	return r
}

// Create stores a pending payment for a freshly created gateway order.
func (r PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	notes, err := encodeNotes(p.Notes)
	if err != nil {
		return err
	}
	id, err := r.Store.InsertID(ctx, r.q(), `
		INSERT INTO payments (order_id, user_id, booking_type, booking_id, amount, currency, receipt, notes, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.OrderID, nullInt(p.UserID), intdb.NullIfEmpty(p.BookingType), nullInt(p.BookingID),
		p.Amount, p.Currency, intdb.NullIfEmpty(p.Receipt), notes, p.Status,
	)
	if err != nil {
		if r.Store.IsUniqueViolation(err) {
			return domain.ConflictError{Resource: "payment", Msg: "order already recorded", Err: err}
		}
		return err
	}
	p.ID = id
	return nil
}

func (r PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (models.Payment, error) {
	var (
		p     models.Payment
		notes sql.NullString
	)
	err := r.q().QueryRowContext(ctx, r.rebind(`
		SELECT id, order_id, COALESCE(payment_id, ''), COALESCE(user_id, 0), COALESCE(booking_type, ''),
		       COALESCE(booking_id, 0), amount, currency, COALESCE(method, ''), COALESCE(receipt, ''),
		       notes, status, created_at, updated_at
		FROM payments
		WHERE order_id = ?
		LIMIT 1`), orderID).Scan(
		&p.ID, &p.OrderID, &p.PaymentID, &p.UserID, &p.BookingType,
		&p.BookingID, &p.Amount, &p.Currency, &p.Method, &p.Receipt,
		&notes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
	}
	if err != nil {
		return models.Payment{}, err
	}
	if notes.Valid && notes.String != "" {
		_ = json.Unmarshal([]byte(notes.String), &p.Notes)
	}
	return p, nil
}

// UpdateResult records a verification or webhook outcome. Empty strings keep the stored value
// and a successful payment is never overwritten.
func (r PaymentRepository) UpdateResult(ctx context.Context, orderID, paymentID, signature, method, status string) (int64, error) {
	res, err := r.q().ExecContext(ctx, r.rebind(`
		UPDATE payments
		SET payment_id = COALESCE(?, payment_id),
		    signature = COALESCE(?, signature),
		    method = COALESCE(?, method),
		    status = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE order_id = ? AND status <> ?`),
		intdb.NullIfEmpty(paymentID), intdb.NullIfEmpty(signature), intdb.NullIfEmpty(method), status, orderID, domain.PaymentSuccess,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func encodeNotes(notes map[string]any) (any, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
