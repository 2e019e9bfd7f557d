package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quent-tech-backend/internal/contact"
	"quent-tech-backend/internal/http/response"
	"quent-tech-backend/internal/mail"
)

// Messages returned to callers. Internal causes are only logged.
const (
	MsgMissingFields = "Name, email, and message are required"
	MsgInvalidEmail  = "Invalid email address"
	MsgSendFailed    = "Failed to send message"
)

// ContactConfig is everything the handler needs to know about the deployment
type ContactConfig struct {
	NotificationEmail string // both sender and recipient of notifications
	Template          contact.NotificationTemplate
	DispatchTimeout   time.Duration // zero means no handler-side timeout
}

// ContactHandler accepts contact-form submissions and forwards each accepted one as an email.
// It keeps no state between requests.
type ContactHandler struct {
	cfg    ContactConfig
	sender mail.Sender
	spam   contact.SpamFilter
	logger *zap.Logger
	newRef func() string
}

// NewContactHandler creates a contact handler. A nil spam filter means the honeypot check.
func NewContactHandler(cfg ContactConfig, sender mail.Sender, spam contact.SpamFilter, logger *zap.Logger) *ContactHandler {
	if spam == nil {
		spam = contact.Honeypot{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		cfg:    cfg,
		sender: sender,
		spam:   spam,
		logger: logger,
		newRef: uuid.NewString,
	}
}

// Preflight answers cross-origin OPTIONS requests. The CORS headers are set by middleware.
func (h *ContactHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if !response.DecodeLenient(w, r, &sub) {
		// A body we cannot read is handled as a submission with every field empty.
		sub = contact.Submission{}
	}

	if h.spam.IsSpam(r.Context(), sub) {
		h.logger.Info("contact submission dropped as spam", zap.String("remote_ip", r.RemoteAddr))
		response.OK(w)
		return
	}

	if err := sub.Validate(); err != nil {
		switch {
		case errors.Is(err, contact.ErrMissingFields):
			response.BadRequest(w, MsgMissingFields)
		case errors.Is(err, contact.ErrInvalidEmail):
			response.BadRequest(w, MsgInvalidEmail)
		default:
			response.BadRequest(w, err.Error())
		}
		return
	}

	ref := h.newRef()
	note := h.cfg.Template.Render(sub, ref)
	msg := mail.Message{
		From:     h.cfg.NotificationEmail,
		To:       []string{h.cfg.NotificationEmail},
		ReplyTo:  []string{note.ReplyTo},
		Subject:  note.Subject,
		TextBody: note.Body,
	}

	// The email goes out even if the visitor closes the connection mid-request.
	ctx := context.WithoutCancel(r.Context())
	if h.cfg.DispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.DispatchTimeout)
		defer cancel()
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send contact notification",
			zap.String("reference", ref),
			zap.Error(err),
		)
		response.InternalServerError(w, MsgSendFailed)
		return
	}

	h.logger.Info("contact notification sent", zap.String("reference", ref))
	response.OK(w)
}
