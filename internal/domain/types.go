package domain

// Status values for bookings and payments.
const (
	BookingConfirmed = "CONFIRMED"

	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

// Booking modes. Cab bookings carry no inventory reference.
const (
	ModeHotel = "hotel"
	ModeBus   = "bus"
	ModeTrain = "train"
	ModeCab   = "cab"
)

// Payment flow states: INITIATED -> ORDER_CREATED -> VERIFIED | FAILED.
type PaymentFlowState string

const (
	FlowInitiated    PaymentFlowState = "INITIATED"
	FlowOrderCreated PaymentFlowState = "ORDER_CREATED"
	FlowVerified     PaymentFlowState = "VERIFIED"
	FlowFailed       PaymentFlowState = "FAILED"
)

// FlowState maps a persisted payment status onto the payment flow.
func FlowState(status string) PaymentFlowState {
	switch status {
	case PaymentSuccess:
		return FlowVerified
	case PaymentFailed:
		return FlowFailed
	case PaymentPending:
		return FlowOrderCreated
	default:
		return FlowInitiated
	}
}

// IsBookingMode reports whether mode names a bookable travel mode.
func IsBookingMode(mode string) bool {
	switch mode {
	case ModeHotel, ModeBus, ModeTrain, ModeCab:
		return true
	}
	return false
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}
