package dto

import (
	"time"

	"github.com/paprooms/server/internal/models"
)

type BookingResponse struct {
	ID            uint                 `json:"id"`
	Reference     string               `json:"reference"`
	RoomID        uint                 `json:"room_id"`
	ListingID     uint                 `json:"listing_id"`
	GuestName     string               `json:"guest_name,omitempty"`
	GuestEmail    string               `json:"guest_email,omitempty"`
	CheckIn       time.Time            `json:"check_in"`
	CheckOut      time.Time            `json:"check_out"`
	Guests        int                  `json:"guests"`
	TotalAmount   float64              `json:"total_amount"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`

	Room    *models.Room    `json:"room,omitempty"`
	Listing *models.Listing `json:"listing,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type PaymentResponse struct {
	ID               uint                `json:"id"`
	BookingID        uint                `json:"booking_id"`
	GatewayOrderID   string              `json:"gateway_order_id"`
	GatewayPaymentID string              `json:"gateway_payment_id,omitempty"`
	Amount           int64               `json:"amount"`
	Currency         string              `json:"currency"`
	Status           models.PaymentState `json:"status"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Reference:     b.Reference,
		RoomID:        b.RoomID,
		ListingID:     b.ListingID,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CreatedAt:     b.CreatedAt,
		Room:          b.Room,
		Listing:       b.Listing,
	}
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		GatewayOrderID:   p.GatewayOrderID,
		GatewayPaymentID: p.GatewayPaymentID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           p.Status,
	}
}
