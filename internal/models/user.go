package models

import "time"

type Role string

const (
	RoleGuest Role = "guest"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

type AuthProvider string

const (
	ProviderLocal     AuthProvider = "local"
	ProviderFederated AuthProvider = "federated"
	ProviderBoth      AuthProvider = "both"
)

// User covers registered accounts as well as placeholder guest profiles
// created for walk-in bookings. A local or both provider implies a password
// hash; federated-only users may have none.
type User struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string       `json:"phone,omitempty"`
	PasswordHash string       `gorm:"column:password_hash" json:"-"`
	Role         Role         `gorm:"type:varchar(20);not null;default:'guest'" json:"role"`
	Provider     AuthProvider `gorm:"type:varchar(20);not null;default:'local'" json:"provider"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
