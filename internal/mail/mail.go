// Package mail delivers notification emails through SES, SMTP or the log.
package mail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"quent-tech-backend/internal/config"
)

// ErrInvalidMessage is returned before any network call when a message cannot be sent as built.
var ErrInvalidMessage = errors.New("invalid email message")

// Sender delivers a single message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a plain-text email.
type Message struct {
	From     string
	To       []string
	ReplyTo  []string
	Subject  string
	TextBody string
}

// Validate checks the fields every driver needs
func (m Message) Validate() error {
	if m.From == "" {
		return fmt.Errorf("%w: missing sender", ErrInvalidMessage)
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidMessage)
	}
	if m.Subject == "" || m.TextBody == "" {
		return fmt.Errorf("%w: subject and body are required", ErrInvalidMessage)
	}
	return nil
}

// New returns the Sender selected by cfg.Driver
func New(ctx context.Context, cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	switch cfg.Driver {
	case "", "ses":
		return NewSESSenderFromConfig(ctx, cfg)
	case "smtp":
		return NewSMTPSender(cfg.SMTP, cfg.Timeout), nil
	case "log":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
