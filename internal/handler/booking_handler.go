package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/paprooms/server/internal/dto"
	"github.com/paprooms/server/internal/middleware"
	"github.com/paprooms/server/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, requireAuth, optionalAuth echo.MiddlewareFunc) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking, optionalAuth)
	bookings.GET("/my", h.ListMine, requireAuth)
	bookings.GET("/owner", h.ListForOwner, requireAuth)
	bookings.POST("/:id/cancel", h.CancelBooking, requireAuth)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	checkIn, err := time.ParseInLocation("2006-01-02", req.CheckIn, time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid check_in date")
	}
	checkOut, err := time.ParseInLocation("2006-01-02", req.CheckOut, time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid check_out date")
	}

	var requester service.Requester
	if user := middleware.CurrentUser(c); user != nil {
		requester = service.AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		}
	} else {
		requester = service.GuestContact{
			Name:  req.GuestName,
			Email: req.GuestEmail,
			Phone: req.GuestPhone,
		}
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		RoomID:    req.RoomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    req.Guests,
		Requester: requester,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange), errors.Is(err, service.ErrMissingContact):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRoomNotFound), errors.Is(err, service.ErrListingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRoomUnavailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "booking failed")
		}
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	user := middleware.CurrentUser(c)

	bookings, err := h.svc.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bookings")
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListForOwner(c echo.Context) error {
	user := middleware.CurrentUser(c)

	bookings, err := h.svc.ListForOwner(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch owner bookings")
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	user := middleware.CurrentUser(c)

	booking, err := h.svc.CancelBooking(c.Request().Context(), uint(bookingID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to cancel this booking")
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to cancel booking")
		}
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
