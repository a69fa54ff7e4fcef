package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Active reports whether the booking blocks its room's dates. Only pending
// and confirmed bookings participate in the overlap check.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking reserves a room for [CheckIn, CheckOut). CheckOut is exclusive:
// back-to-back stays may share a boundary date. ListingID and OwnerID are
// denormalized from the room's listing at creation time.
type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`
	RoomID    uint   `gorm:"index;not null" json:"room_id"`
	ListingID uint   `gorm:"index;not null" json:"listing_id"`
	GuestID   uint   `gorm:"index;not null" json:"guest_id"`
	OwnerID   uint   `gorm:"index;not null" json:"owner_id"`

	GuestName  string `json:"guest_name,omitempty"`
	GuestEmail string `gorm:"index" json:"guest_email,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`

	CheckIn     time.Time `gorm:"not null" json:"check_in"`
	CheckOut    time.Time `gorm:"not null" json:"check_out"`
	Guests      int       `gorm:"default:1" json:"guests"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`

	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room    *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
