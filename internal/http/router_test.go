package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"travelapp/internal/auth"
	intconfig "travelapp/internal/config"
	intdb "travelapp/internal/db"
	h "travelapp/internal/http/handlers"
	"travelapp/internal/payments"
	"travelapp/internal/repositories"
	"travelapp/internal/services"
)

const (
	testOrigin    = "http://localhost:4000"
	gatewaySecret = "rzp_secret"
)

type testServer struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := intdb.NewStore(db, intdb.MySQL{})

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	inv := services.InventoryService{
		Hotels: repositories.NewHotelRepository(store),
		Buses:  repositories.NewBusRepository(store),
		Trains: repositories.NewTrainRepository(store),
	}
	bookings := services.BookingService{
		Bookings:  repositories.NewBookingRepository(store),
		Hotels:    inv.Hotels,
		Buses:     inv.Buses,
		Inventory: inv,
	}
	hd := &h.Handler{
		Store:     store,
		Auth:      services.AuthService{Users: repositories.NewUserRepository(store), Tokens: tokens, BcryptCost: 4},
		Inventory: inv,
		Bookings:  bookings,
		Payments: services.PaymentService{
			Store:    store,
			Payments: repositories.NewPaymentRepository(store),
			Gateway:  payments.NewClient("rzp_test_key", gatewaySecret, "whsec", "http://127.0.0.1:1", time.Second),
		},
		Docs: services.DocsService{Bookings: bookings},
	}
	router := NewRouter(intconfig.Env{AllowedOrigins: []string{testOrigin}}, hd)
	return testServer{router: router, mock: mock, tokens: tokens}
}

func (s testServer) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]any{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (s testServer) token(t *testing.T) string {
	t.Helper()
	tok, _, err := s.tokens.Issue(5, "asha", "Asha Rao")
	require.NoError(t, err)
	return tok
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/flights", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "/api/flights", body["path"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/hotel-booking", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, map[string]any{"message": "no token provided"}, body)
}

func TestProtectedRouteWithBadToken(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/hotel-booking", "", "not.a.token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid or expired token", body["message"])

	other, _, err := auth.NewTokenManager("other-secret", time.Hour).Issue(5, "asha", "")
	require.NoError(t, err)
	w, _ = s.do(t, http.MethodGet, "/api/hotel-booking", "", other)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListMyBookings(t *testing.T) {
	s := newTestServer(t)
	empty := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}) }
	s.mock.ExpectQuery("FROM hotel_bookings").WithArgs(int64(5)).WillReturnRows(empty())
	s.mock.ExpectQuery("FROM bookings b").WithArgs(int64(5), "bus").WillReturnRows(empty())
	s.mock.ExpectQuery("FROM train_bookings").WithArgs(int64(5)).WillReturnRows(empty())
	s.mock.ExpectQuery(`information_schema\.tables`).WithArgs("cab_bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("cab_bookings"))
	s.mock.ExpectQuery("FROM cab_bookings").WithArgs(int64(5)).WillReturnRows(empty())

	w, body := s.do(t, http.MethodGet, "/api/hotel-booking", "", s.token(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, k := range []string{"hotels", "buses", "trains", "cabs"} {
		require.Equal(t, []any{}, body[k], k)
	}
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/auth/me", "", s.token(t))
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]any)
	require.Equal(t, "asha", user["username"])
	require.EqualValues(t, 5, user["userId"])
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"asha","password":"pw"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "fullname is required", body["message"])
	require.Equal(t, "fullname", body["field"])

	w, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"fullname":"A","username":"asha","password":"pw","email":"nope"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "email must be a valid email", body["message"])

	w, body = s.do(t, http.MethodPost, "/api/auth/signup", `{`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_payload", body["code"])
}

func TestSignupConflict(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("asha", "asha@example.com", "asha", "asha@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	w, body := s.do(t, http.MethodPost, "/api/auth/signup",
		`{"fullname":"Asha Rao","username":"asha","password":"pw","email":"Asha@Example.com"}`, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "conflict", body["code"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestCabTypes(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/cabs", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["cabs"], 3)
}

func TestBusSearchRequiresRoute(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/buses/search?from=Delhi", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "validation_error", body["code"])
}

func TestPNRLookupRejectsMalformedPNR(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/api/trains/pnr/xyz", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentOrderRejectsZeroAmount(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodPost, "/api/payment/orders", `{"amount":0}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, body["success"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestPaymentOrderGatewayDown(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodPost, "/api/payment/orders", `{"amount":500}`, "")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, false, body["success"])
}

func pendingPayment() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "order_id", "payment_id", "user_id", "booking_type", "booking_id", "amount",
		"currency", "method", "receipt", "notes", "status", "created_at", "updated_at"}).
		AddRow(1, "order_1", "", 0, "", 0, 500.0, "INR", "", "rcpt_1", nil, "pending", now, now)
}

func TestVerifyPayment(t *testing.T) {
	s := newTestServer(t)
	sig := payments.Sign(gatewaySecret, "order_1|pay_1")
	s.mock.ExpectBegin()
	s.mock.ExpectQuery("FROM payments").WithArgs("order_1").WillReturnRows(pendingPayment())
	s.mock.ExpectExec("UPDATE payments").
		WithArgs("pay_1", sig, nil, "success", "order_1", "success").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	w, body := s.do(t, http.MethodPost, "/api/payment/verify",
		`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"`+sig+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])

	s.mock.ExpectBegin()
	s.mock.ExpectQuery("FROM payments").WithArgs("order_1").WillReturnRows(pendingPayment())
	s.mock.ExpectExec("UPDATE payments").
		WithArgs(nil, nil, nil, "failed", "order_1", "success").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	w, body = s.do(t, http.MethodPost, "/api/payment/verify",
		`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"forged"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid signature", body["message"])
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestWebhookRejectsUnsignedBody(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodPost, "/api/payment/webhook", `{"event":"payment.captured"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/hotels", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/hotels", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
