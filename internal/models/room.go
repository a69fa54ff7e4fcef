package models

import (
	"time"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
)

// Room is a single bookable unit inside a listing with its own nightly price.
type Room struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ListingID     uint           `gorm:"index;not null" json:"listing_id"`
	Title         string         `gorm:"not null" json:"title"`
	Type          RoomType       `gorm:"type:varchar(20);not null" json:"type"`
	PricePerNight float64        `gorm:"not null" json:"price_per_night"`
	MaxGuests     int            `gorm:"default:2" json:"max_guests"`
	Amenities     datatypes.JSON `json:"amenities,omitempty"`
	Images        datatypes.JSON `json:"images,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}
