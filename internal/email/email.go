// Package email delivers order notifications to the store inbox.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes the email to the log instead of sending it. Local
// development runs with this so no API key is needed to exercise checkout.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "email")}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("order notification (not sent)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	req := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender picks the implementation for the environment: log-only for
// local, Resend everywhere else.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return NewLogSender(logger)
	}
	return NewResendSender(apiKey, from)
}
