package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paprooms/server/pkg/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker consumes booking events and sends guest/owner email. Delivery is
// best-effort: a failed send is logged and the message acked, never requeued
// into a retry storm.
type Worker struct {
	mail mailer.Mailer
	log  *zap.SugaredLogger
}

func NewWorker(mail mailer.Mailer, log *zap.SugaredLogger) *Worker {
	return &Worker{mail: mail, log: log}
}

func (w *Worker) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			w.handleMessage(msg)
		}
		w.log.Info("notifier channel closed, stopping worker")
	}()
}

func (w *Worker) handleMessage(msg amqp.Delivery) {
	var ev BookingEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		w.log.Errorw("notifier failed to unmarshal event", "err", err)
		msg.Nack(false, false)
		return
	}

	ctx := context.Background()

	if ev.GuestEmail != "" {
		w.mail.Send(ctx, guestEmail(ev))
	}
	if ev.OwnerEmail != "" {
		w.mail.Send(ctx, ownerEmail(ev))
	}

	msg.Ack(false)
}

func guestEmail(ev BookingEvent) mailer.Email {
	switch ev.Type {
	case BookingConfirmed:
		return mailer.Email{
			To:      ev.GuestEmail,
			Subject: "Booking Confirmed",
			HTML: fmt.Sprintf(
				`<h2>Your booking is confirmed!</h2>
				<p><strong>Listing:</strong> %s</p>
				<p><strong>Check-in:</strong> %s</p>
				<p><strong>Check-out:</strong> %s</p>
				<p><strong>Total paid:</strong> ₹%.2f</p>`,
				ev.ListingTitle, ev.CheckIn.Format("Mon Jan 2 2006"), ev.CheckOut.Format("Mon Jan 2 2006"), ev.TotalAmount),
		}
	case BookingCancelled:
		return mailer.Email{
			To:      ev.GuestEmail,
			Subject: "Booking Cancelled",
			HTML: fmt.Sprintf(
				`<h2>Your booking was cancelled.</h2>
				<p><strong>Listing:</strong> %s</p>
				<p><strong>Reference:</strong> %s</p>`,
				ev.ListingTitle, ev.Reference),
		}
	default:
		return mailer.Email{
			To:      ev.GuestEmail,
			Subject: "Booking Created - Payment Pending",
			HTML: fmt.Sprintf(
				`<h2>Your booking request is created!</h2>
				<p><strong>Listing:</strong> %s</p>
				<p><strong>Check-in:</strong> %s</p>
				<p><strong>Check-out:</strong> %s</p>
				<p><strong>Total:</strong> ₹%.2f</p>
				<p>Please complete payment to confirm your booking.</p>`,
				ev.ListingTitle, ev.CheckIn.Format("Mon Jan 2 2006"), ev.CheckOut.Format("Mon Jan 2 2006"), ev.TotalAmount),
		}
	}
}

func ownerEmail(ev BookingEvent) mailer.Email {
	switch ev.Type {
	case BookingConfirmed:
		return mailer.Email{
			To:      ev.OwnerEmail,
			Subject: "Booking Confirmed",
			HTML: fmt.Sprintf(
				`<h2>A booking on your property was paid and confirmed.</h2>
				<p><strong>Property:</strong> %s</p>
				<p><strong>Check-in:</strong> %s</p>
				<p><strong>Check-out:</strong> %s</p>
				<p>Total amount: ₹%.2f</p>`,
				ev.ListingTitle, ev.CheckIn.Format("Mon Jan 2 2006"), ev.CheckOut.Format("Mon Jan 2 2006"), ev.TotalAmount),
		}
	case BookingCancelled:
		return mailer.Email{
			To:      ev.OwnerEmail,
			Subject: "Booking Cancelled",
			HTML: fmt.Sprintf(
				`<h2>A booking on your property was cancelled.</h2>
				<p><strong>Property:</strong> %s</p>
				<p><strong>Reference:</strong> %s</p>`,
				ev.ListingTitle, ev.Reference),
		}
	default:
		return mailer.Email{
			To:      ev.OwnerEmail,
			Subject: "New Booking Request",
			HTML: fmt.Sprintf(
				`<h2>You have a new booking request!</h2>
				<p><strong>Property:</strong> %s</p>
				<p><strong>Check-in:</strong> %s</p>
				<p><strong>Check-out:</strong> %s</p>
				<p>Total amount: ₹%.2f</p>`,
				ev.ListingTitle, ev.CheckIn.Format("Mon Jan 2 2006"), ev.CheckOut.Format("Mon Jan 2 2006"), ev.TotalAmount),
		}
	}
}
