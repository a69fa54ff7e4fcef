package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/notifier"
	"github.com/paprooms/server/internal/repository"
	"github.com/paprooms/server/pkg/gateway"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPaymentsUnavailable = errors.New("payments are temporarily unavailable")
	ErrAlreadyPaid         = errors.New("booking is already paid")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrVerificationFailed  = errors.New("payment verification failed")
)

// OrderIntent is what the client needs to drive the gateway checkout UI.
type OrderIntent struct {
	OrderID   string  `json:"order_id"`
	BookingID uint    `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Key       string  `json:"key"`
}

type VerifyPaymentInput struct {
	BookingID        uint
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

type PaymentService interface {
	CreateOrder(ctx context.Context, bookingID uint, payer Requester) (*OrderIntent, error)
	VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	gw          gateway.Gateway // nil when the gateway is not configured
	secret      string
	events      notifier.Publisher
	log         *zap.SugaredLogger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	gw gateway.Gateway,
	secret string,
	events notifier.Publisher,
	log *zap.SugaredLogger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		gw:          gw,
		secret:      secret,
		events:      events,
		log:         log,
	}
}

const currency = "INR"

func (s *paymentService) CreateOrder(ctx context.Context, bookingID uint, payer Requester) (*OrderIntent, error) {
	if s.gw == nil {
		return nil, ErrPaymentsUnavailable
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	payerID, err := s.authorizePayer(booking, payer)
	if err != nil {
		return nil, err
	}

	if booking.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	if booking.Room == nil {
		return nil, ErrRoomNotFound
	}

	// Recompute the charge server-side; client-supplied amounts are ignored.
	nights := nightsBetween(booking.CheckIn, booking.CheckOut)
	totalAmount := float64(nights) * booking.Room.PricePerNight
	amountMinor := int64(math.Round(totalAmount * 100))

	orderID, err := s.gw.CreateOrder(amountMinor, currency, booking.Reference, map[string]interface{}{
		"booking_id": fmt.Sprintf("%d", booking.ID),
		"payer_id":   fmt.Sprintf("%d", payerID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	payment := &models.Payment{
		BookingID:      booking.ID,
		UserID:         payerID,
		GatewayOrderID: orderID,
		Amount:         amountMinor,
		Currency:       currency,
		Status:         models.PaymentCreated,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &OrderIntent{
		OrderID:   orderID,
		BookingID: booking.ID,
		Amount:    totalAmount,
		Currency:  currency,
		Key:       s.gw.KeyID(),
	}, nil
}

// authorizePayer admits the booking's guest by identity, or, for walk-in
// bookings, any payer whose email matches the stored contact email.
func (s *paymentService) authorizePayer(booking *models.Booking, payer Requester) (uint, error) {
	switch p := payer.(type) {
	case AuthenticatedUser:
		if p.ID != booking.GuestID {
			return 0, ErrForbidden
		}
		return p.ID, nil
	case GuestContact:
		if booking.GuestEmail == "" ||
			!strings.EqualFold(strings.TrimSpace(p.Email), booking.GuestEmail) {
			return 0, ErrForbidden
		}
		return booking.GuestID, nil
	default:
		return 0, ErrForbidden
	}
}

func (s *paymentService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*models.Payment, error) {
	if s.gw == nil {
		return nil, ErrPaymentsUnavailable
	}

	// Sole trust boundary: the client cannot forge this without the secret.
	if !gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature, s.secret) {
		return nil, ErrInvalidSignature
	}

	var result *models.Payment
	var confirmed *models.Booking

	// One transaction for both writes so a crash cannot leave a paid payment
	// pointing at an unpaid booking.
	err := s.paymentRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindByGatewayOrderID(ctx, tx, in.GatewayOrderID)
		if err != nil {
			return fmt.Errorf("%w: no payment order %s", ErrVerificationFailed, in.GatewayOrderID)
		}
		if payment.BookingID != in.BookingID {
			return fmt.Errorf("%w: order does not belong to booking %d", ErrVerificationFailed, in.BookingID)
		}

		payment.GatewayPaymentID = in.GatewayPaymentID
		payment.Signature = in.Signature
		payment.Status = models.PaymentSettled
		if err := s.paymentRepo.Save(ctx, tx, payment); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateSettled(ctx, tx, payment.BookingID); err != nil {
			return err
		}

		result = payment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVerificationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	if b, err := s.bookingRepo.FindByID(ctx, result.BookingID); err == nil {
		confirmed = b
	}
	s.publishConfirmed(confirmed)

	return result, nil
}

func (s *paymentService) publishConfirmed(b *models.Booking) {
	if s.events == nil || b == nil {
		return
	}
	var listingTitle string
	if b.Listing != nil {
		listingTitle = b.Listing.Title
	}
	ev := notifier.BookingEvent{
		Type:         notifier.BookingConfirmed,
		BookingID:    b.ID,
		Reference:    b.Reference,
		ListingTitle: listingTitle,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
	}
	if err := s.events.PublishBooking(ev); err != nil {
		s.log.Warnw("booking event publish failed", "type", ev.Type, "booking", b.ID, "err", err)
	}
}
