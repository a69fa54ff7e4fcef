package models

import (
	"time"

	"gorm.io/datatypes"
)

type ListingStatus string

const (
	ListingDraft     ListingStatus = "draft"
	ListingPublished ListingStatus = "published"
	ListingArchived  ListingStatus = "archived"
)

// Listing is a property holding one or more bookable rooms. It is owned by
// exactly one user and mutated only by that owner or an admin.
type Listing struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     uint   `gorm:"index;not null" json:"owner_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	Pincode      string `json:"pincode,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lng          float64 `json:"lng,omitempty"`

	Amenities  datatypes.JSON `json:"amenities,omitempty"`
	Policies   datatypes.JSON `json:"policies,omitempty"`
	Images     datatypes.JSON `json:"images,omitempty"`
	CoverImage string         `json:"cover_image,omitempty"`

	Status    ListingStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
