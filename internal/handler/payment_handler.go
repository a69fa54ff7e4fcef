package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paprooms/server/internal/dto"
	"github.com/paprooms/server/internal/middleware"
	"github.com/paprooms/server/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, optionalAuth echo.MiddlewareFunc) {
	payments := e.Group("/api/v1/payments")
	payments.POST("/order", h.CreateOrder, optionalAuth)
	// Verification needs no bearer token; the gateway signature is the trust
	// boundary.
	payments.POST("/verify", h.VerifyPayment)
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var payer service.Requester
	if user := middleware.CurrentUser(c); user != nil {
		payer = service.AuthenticatedUser{ID: user.ID, Name: user.Name, Email: user.Email}
	} else {
		payer = service.GuestContact{Email: req.PayerEmail}
	}

	intent, err := h.svc.CreateOrder(c.Request().Context(), req.BookingID, payer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentsUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "you are not authorized to pay for this booking")
		case errors.Is(err, service.ErrAlreadyPaid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create order")
		}
	}

	return c.JSON(http.StatusOK, intent)
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.svc.VerifyPayment(c.Request().Context(), service.VerifyPaymentInput{
		BookingID:        req.BookingID,
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentsUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrInvalidSignature):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "payment verification failed")
		}
	}

	return c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
