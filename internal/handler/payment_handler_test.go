package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/paprooms/server/internal/dto"
	"github.com/paprooms/server/internal/middleware"
	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/service"
	"github.com/stretchr/testify/assert"
)

// --- Mock PaymentService ---

type mockPaymentService struct {
	orderFn  func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error)
	verifyFn func(ctx context.Context, in service.VerifyPaymentInput) (*models.Payment, error)
}

func (m *mockPaymentService) CreateOrder(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
	return m.orderFn(ctx, bookingID, payer)
}
func (m *mockPaymentService) VerifyPayment(ctx context.Context, in service.VerifyPaymentInput) (*models.Payment, error) {
	return m.verifyFn(ctx, in)
}

// --- Tests ---

func TestCreateOrder_Handler_Success(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			assert.Equal(t, uint(42), bookingID)
			user, ok := payer.(service.AuthenticatedUser)
			assert.True(t, ok)
			assert.Equal(t, uint(7), user.ID)
			return &service.OrderIntent{
				OrderID:   "order_test_1",
				BookingID: bookingID,
				Amount:    2000,
				Currency:  "INR",
				Key:       "rzp_test_key",
			}, nil
		},
	}

	e := newTestEcho()
	body := `{"booking_id":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUser(c, &models.User{ID: 7, Email: "asha@example.com"})

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.OrderIntent
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order_test_1", resp.OrderID)
	assert.Equal(t, 2000.0, resp.Amount)
	assert.Equal(t, "rzp_test_key", resp.Key)
}

func TestCreateOrder_Handler_WalkInPayer(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			contact, ok := payer.(service.GuestContact)
			assert.True(t, ok)
			assert.Equal(t, "walkin@example.com", contact.Email)
			return &service.OrderIntent{OrderID: "order_test_2", BookingID: bookingID}, nil
		},
	}

	e := newTestEcho()
	body := `{"booking_id":42,"payer_email":"walkin@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOrder_Handler_Unavailable(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			return nil, service.ErrPaymentsUnavailable
		},
	}

	e := newTestEcho()
	body := `{"booking_id":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Code)
}

func TestCreateOrder_Handler_Forbidden(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			return nil, service.ErrForbidden
		},
	}

	e := newTestEcho()
	body := `{"booking_id":42,"payer_email":"someone-else@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestCreateOrder_Handler_AlreadyPaid(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			return nil, service.ErrAlreadyPaid
		},
	}

	e := newTestEcho()
	body := `{"booking_id":42}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateOrder_Handler_BookingNotFound(t *testing.T) {
	svc := &mockPaymentService{
		orderFn: func(ctx context.Context, bookingID uint, payer service.Requester) (*service.OrderIntent, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	e := newTestEcho()
	body := `{"booking_id":999}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.CreateOrder(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

const verifyBody = `{"booking_id":42,"gateway_order_id":"order_1","gateway_payment_id":"pay_1","signature":"sig"}`

func TestVerifyPayment_Handler_Success(t *testing.T) {
	svc := &mockPaymentService{
		verifyFn: func(ctx context.Context, in service.VerifyPaymentInput) (*models.Payment, error) {
			assert.Equal(t, "order_1", in.GatewayOrderID)
			assert.Equal(t, "pay_1", in.GatewayPaymentID)
			return &models.Payment{
				ID:               1,
				BookingID:        in.BookingID,
				GatewayOrderID:   in.GatewayOrderID,
				GatewayPaymentID: in.GatewayPaymentID,
				Amount:           200000,
				Currency:         "INR",
				Status:           models.PaymentSettled,
			}, nil
		},
	}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(verifyBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.VerifyPayment(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.PaymentResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.PaymentSettled, resp.Status)
	assert.Equal(t, int64(200000), resp.Amount)
}

func TestVerifyPayment_Handler_InvalidSignature(t *testing.T) {
	svc := &mockPaymentService{
		verifyFn: func(ctx context.Context, in service.VerifyPaymentInput) (*models.Payment, error) {
			return nil, service.ErrInvalidSignature
		},
	}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(verifyBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.VerifyPayment(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestVerifyPayment_Handler_MissingFields(t *testing.T) {
	e := newTestEcho()
	body := `{"booking_id":42,"gateway_order_id":"order_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(nil)
	err := h.VerifyPayment(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestVerifyPayment_Handler_VerificationFailed(t *testing.T) {
	svc := &mockPaymentService{
		verifyFn: func(ctx context.Context, in service.VerifyPaymentInput) (*models.Payment, error) {
			return nil, service.ErrVerificationFailed
		},
	}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(verifyBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewPaymentHandler(svc)
	err := h.VerifyPayment(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}
