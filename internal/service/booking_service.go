package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paprooms/server/internal/auth"
	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/notifier"
	"github.com/paprooms/server/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateRange  = errors.New("check-in must be today or later and check-out must be after check-in")
	ErrRoomNotFound      = errors.New("room not found")
	ErrListingNotFound   = errors.New("listing not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrMissingContact    = errors.New("guest email is required to place a booking")
	ErrRoomUnavailable   = errors.New("room already booked for selected dates")
	ErrForbidden         = errors.New("not allowed to act on this resource")
	ErrInvalidTransition = errors.New("invalid booking state transition")
)

type CreateBookingInput struct {
	RoomID    uint
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	Requester Requester
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	ListMine(ctx context.Context, guestID uint) ([]models.Booking, error)
	ListForOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uint) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	events      notifier.Publisher
	log         *zap.SugaredLogger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	events notifier.Publisher,
	log *zap.SugaredLogger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		events:      events,
		log:         log,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := validateStayDates(in.CheckIn, in.CheckOut, time.Now()); err != nil {
		return nil, err
	}
	if in.Requester == nil {
		return nil, ErrMissingContact
	}

	var (
		result       *models.Booking
		listingTitle string
		ownerEmail   string
	)

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room row — serializes concurrent booking attempts
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, in.RoomID)
		if err != nil {
			return ErrRoomNotFound
		}

		listing, err := s.listingRepo.FindByID(ctx, room.ListingID)
		if err != nil {
			return ErrListingNotFound
		}
		listingTitle = listing.Title

		if owner, err := s.userRepo.FindByID(ctx, listing.OwnerID); err == nil {
			ownerEmail = owner.Email
		}

		// 2. Resolve the guest identity (account or walk-in contact)
		guest, err := s.resolveGuest(ctx, tx, in.Requester)
		if err != nil {
			return err
		}

		// 3. Overlap check against active bookings for this room
		_, err = s.bookingRepo.FindOverlapping(ctx, tx, room.ID, in.CheckIn, in.CheckOut)
		if err == nil {
			return ErrRoomUnavailable
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 4. Price server-side
		nights := nightsBetween(in.CheckIn, in.CheckOut)

		guests := in.Guests
		if guests <= 0 {
			guests = 1
		}

		booking := &models.Booking{
			Reference:     uuid.NewString(),
			RoomID:        room.ID,
			ListingID:     listing.ID,
			GuestID:       guest.ID,
			OwnerID:       listing.OwnerID,
			GuestName:     guest.Name,
			GuestEmail:    guest.Email,
			GuestPhone:    guest.Phone,
			CheckIn:       in.CheckIn,
			CheckOut:      in.CheckOut,
			Guests:        guests,
			TotalAmount:   float64(nights) * room.PricePerNight,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentUnpaid,
		}

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			if isOverlapConflict(err) {
				return ErrRoomUnavailable
			}
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(notifier.BookingCreated, result, listingTitle, ownerEmail)
	return result, nil
}

func (s *bookingService) ListMine(ctx context.Context, guestID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByGuest(ctx, guestID)
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByOwner(ctx, ownerID)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, requesterID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if requesterID != booking.GuestID && requesterID != booking.OwnerID {
		return nil, ErrForbidden
	}

	if booking.Status == models.StatusCancelled || booking.Status == models.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, booking.Status)
	}

	booking.Status = models.StatusCancelled
	// Refunded here is a ledger flag only; no gateway refund call is issued.
	if booking.PaymentStatus == models.PaymentPaid {
		booking.PaymentStatus = models.PaymentRefunded
	} else {
		booking.PaymentStatus = models.PaymentUnpaid
	}

	if err := s.bookingRepo.Save(ctx, nil, booking); err != nil {
		return nil, err
	}

	var listingTitle string
	if booking.Listing != nil {
		listingTitle = booking.Listing.Title
	}
	var ownerEmail string
	if owner, err := s.userRepo.FindByID(ctx, booking.OwnerID); err == nil {
		ownerEmail = owner.Email
	}
	s.publish(notifier.BookingCancelled, booking, listingTitle, ownerEmail)

	return booking, nil
}

// resolveGuest maps the requester onto a user row, creating a placeholder
// guest account for walk-in contacts. Runs inside the booking transaction.
func (s *bookingService) resolveGuest(ctx context.Context, tx *gorm.DB, req Requester) (*models.User, error) {
	switch r := req.(type) {
	case AuthenticatedUser:
		return s.userRepo.FindByID(ctx, r.ID)
	case GuestContact:
		email := strings.ToLower(strings.TrimSpace(r.Email))
		if email == "" {
			return nil, ErrMissingContact
		}
		return s.ensureGuestUser(ctx, tx, r.Name, email, r.Phone)
	default:
		return nil, ErrMissingContact
	}
}

// ensureGuestUser is idempotent by email: a repeated walk-in booking reuses
// the existing account and backfills missing name/phone.
func (s *bookingService) ensureGuestUser(ctx context.Context, tx *gorm.DB, name, email, phone string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, tx, email)
	if err == nil {
		dirty := false
		if existing.Name == "" && name != "" {
			existing.Name = name
			dirty = true
		}
		if existing.Phone == "" && phone != "" {
			existing.Phone = phone
			dirty = true
		}
		if dirty {
			if err := s.userRepo.Save(ctx, tx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if name == "" {
		name = "Guest"
	}

	// Temp password so the account satisfies the local-provider invariant;
	// it is never shared and can only be replaced via a reset flow.
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         models.RoleGuest,
		Provider:     models.ProviderLocal,
	}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *bookingService) publish(eventType string, b *models.Booking, listingTitle, ownerEmail string) {
	if s.events == nil || b == nil {
		return
	}
	ev := notifier.BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		Reference:    b.Reference,
		ListingTitle: listingTitle,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		TotalAmount:  b.TotalAmount,
		Status:       string(b.Status),
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		OwnerEmail:   ownerEmail,
	}
	if err := s.events.PublishBooking(ev); err != nil {
		s.log.Warnw("booking event publish failed", "type", eventType, "booking", b.ID, "err", err)
	}
}

// validateStayDates enforces check-in >= start of today (server local) and
// check-out strictly after check-in.
func validateStayDates(checkIn, checkOut, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if checkIn.Before(today) {
		return ErrInvalidDateRange
	}
	if !checkOut.After(checkIn) {
		return ErrInvalidDateRange
	}
	return nil
}

// nightsBetween rounds partial nights up.
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// isOverlapConflict detects the exclusion-constraint backstop firing when a
// concurrent insert slipped past the overlap scan.
func isOverlapConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "bookings_no_overlap")
}
