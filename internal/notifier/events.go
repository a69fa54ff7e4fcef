package notifier

import (
	"time"

	"github.com/paprooms/server/pkg/rabbitmq"
)

const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent carries everything the mail worker needs so it never has to
// read the database.
type BookingEvent struct {
	Type         string    `json:"type"`
	BookingID    uint      `json:"booking_id"`
	Reference    string    `json:"reference"`
	ListingTitle string    `json:"listing_title"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	GuestName    string    `json:"guest_name"`
	GuestEmail   string    `json:"guest_email"`
	OwnerEmail   string    `json:"owner_email"`
}

// Publisher is nil-able on the service side: an unconfigured broker means
// events are skipped and booking correctness is unaffected.
type Publisher interface {
	PublishBooking(ev BookingEvent) error
}

type AMQPPublisher struct {
	pub *rabbitmq.Publisher
}

func NewAMQPPublisher(pub *rabbitmq.Publisher) *AMQPPublisher {
	return &AMQPPublisher{pub: pub}
}

func (p *AMQPPublisher) PublishBooking(ev BookingEvent) error {
	return p.pub.Publish(ev.Type, ev)
}
