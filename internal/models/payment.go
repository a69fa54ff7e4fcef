package models

import "time"

type PaymentState string

const (
	PaymentCreated       PaymentState = "created"
	PaymentSettled       PaymentState = "paid"
	PaymentFailed        PaymentState = "failed"
	PaymentStateRefunded PaymentState = "refunded"
)

// Payment is one gateway charge attempt for a booking. Amount is in minor
// currency units (paise). GatewayPaymentID and Signature are set on
// settlement.
type Payment struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	BookingID        uint         `gorm:"index;not null" json:"booking_id"`
	UserID           uint         `gorm:"index;not null" json:"user_id"`
	GatewayOrderID   string       `gorm:"size:64;uniqueIndex" json:"gateway_order_id"`
	GatewayPaymentID string       `gorm:"size:64" json:"gateway_payment_id,omitempty"`
	Signature        string       `gorm:"size:128" json:"-"`
	Amount           int64        `gorm:"not null" json:"amount"`
	Currency         string       `gorm:"size:8;not null;default:'INR'" json:"currency"`
	Status           PaymentState `gorm:"type:varchar(20);not null;default:'created'" json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
