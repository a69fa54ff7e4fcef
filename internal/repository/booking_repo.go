package repository

import (
	"context"
	"time"

	"github.com/paprooms/server/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (*models.Booking, error)
	FindByGuest(ctx context.Context, guestID uint) ([]models.Booking, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	UpdateSettled(ctx context.Context, tx *gorm.DB, bookingID uint) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Listing").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindOverlapping returns any active booking whose [check_in, check_out)
// interval intersects the requested one. Two ranges [a,b) and [c,d) overlap
// iff a < d and c < b, so touching boundaries do not conflict.
func (r *bookingRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed},
			checkOut, checkIn).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByGuest(ctx context.Context, guestID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Listing").
		Where("guest_id = ?", guestID).
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Listing").
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(booking).Error
}

// UpdateSettled marks a booking confirmed and paid in one statement. It runs
// inside the settlement transaction alongside the payment row update.
func (r *bookingRepository) UpdateSettled(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":         models.StatusConfirmed,
			"payment_status": models.PaymentPaid,
		}).Error
}
