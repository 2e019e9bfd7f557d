package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"quent-tech-backend/internal/config"
)

// SMTPSender sends through an SMTP relay
type SMTPSender struct {
	cfg     config.SMTPConfig
	timeout time.Duration
}

// NewSMTPSender applies the usual defaults: port 587 with mandatory STARTTLS, or 465 for
// implicit TLS, and a 30s timeout
func NewSMTPSender(cfg config.SMTPConfig, timeout time.Duration) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
		if cfg.UseSSL {
			cfg.Port = 465
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg, timeout: timeout}
}

// Send dials the relay once and sends msg
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: failed to send: %w", err)
	}
	return nil
}

func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("%w: from address: %v", ErrInvalidMessage, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("%w: to address: %v", ErrInvalidMessage, err)
	}
	if len(msg.ReplyTo) > 0 {
		if err := m.ReplyTo(msg.ReplyTo[0]); err != nil {
			return nil, fmt.Errorf("%w: reply-to address: %v", ErrInvalidMessage, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	m.SetDate()
	m.SetMessageID()

	return m, nil
}

func (s *SMTPSender) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTimeout(s.timeout),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	if s.cfg.UseSSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}
	return opts
}
