package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional email best-effort. Send reports success but
// callers must never treat a false as a hard failure.
type Mailer interface {
	Send(ctx context.Context, email Email) bool
}

type Resend struct {
	client *resend.Client
	from   string
	log    *zap.SugaredLogger
}

// NewResend builds the Resend-backed mailer. An empty API key yields a
// disabled mailer whose Send is a logged no-op.
func NewResend(apiKey, from string, log *zap.SugaredLogger) *Resend {
	m := &Resend{from: from, log: log}
	if apiKey != "" {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

func (m *Resend) Send(ctx context.Context, email Email) bool {
	if m.client == nil {
		m.log.Warnw("mail skipped, RESEND_API_KEY missing", "to", email.To, "subject", email.Subject)
		return false
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.log.Errorw("mail send failed", "to", email.To, "subject", email.Subject, "err", err)
		return false
	}

	m.log.Infow("mail sent", "to", email.To, "id", sent.Id)
	return true
}
