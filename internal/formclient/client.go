// Package formclient drives the website contact form: it holds the field values, validates them
// the same way the handler does, and submits them to the contact endpoint.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"quent-tech-backend/internal/contact"
)

// Status is where the form is in its submit cycle
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusError   Status = "error"
)

// Messages shown to the visitor
const (
	MsgRequiredFields = "Please fill in all required fields."
	MsgInvalidEmail   = "Please enter a valid email address."
	MsgSendFailed     = "Failed to send message"
	MsgNetworkFailure = "Failed to send message. Please try again."
)

// DefaultTimeout bounds one submission round trip
const DefaultTimeout = 15 * time.Second

// ErrSubmissionInFlight is returned by Submit while an earlier submission is still sending.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Fields are the values typed into the form
type Fields struct {
	Name     string
	Email    string
	Company  string
	Message  string
	Honeypot string
}

func (f Fields) submission() contact.Submission {
	return contact.Submission{
		Name:     f.Name,
		Email:    f.Email,
		Company:  f.Company,
		Message:  f.Message,
		Honeypot: f.Honeypot,
	}
}

// Client is the form state plus the endpoint it posts to. It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration

	mu       sync.Mutex
	fields   Fields
	status   Status
	errorMsg string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for submissions
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout bounds each submission
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// New creates a form client for the API at baseURL, e.g. https://api.quent-tech.com
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/contact",
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFields replaces the current field values
func (c *Client) SetFields(f Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = f
}

// Fields returns the current field values
func (c *Client) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Status returns the current submit status
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ErrorMessage returns the message shown for StatusError, empty otherwise
func (c *Client) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMsg
}

// Reset goes back to idle after a sent or failed submission. Field values are kept.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSending {
		return
	}
	c.status = StatusIdle
	c.errorMsg = ""
}

// Submit validates the fields and posts them to the contact endpoint.
//
// Validation failures and delivery failures are reported through Status and ErrorMessage, and
// Submit returns nil for them. The only error returned is ErrSubmissionInFlight.
func (c *Client) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusSending {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	sub := c.fields.submission()
	if msg := validationMessage(sub); msg != "" {
		c.status = StatusError
		c.errorMsg = msg
		c.mu.Unlock()
		return nil
	}

	c.status = StatusSending
	c.errorMsg = ""
	c.mu.Unlock()

	msg := c.post(ctx, sub.Normalized())

	c.mu.Lock()
	defer c.mu.Unlock()
	if msg != "" {
		c.status = StatusError
		c.errorMsg = msg
		return nil
	}
	c.status = StatusSent
	c.fields = Fields{}
	return nil
}

func validationMessage(sub contact.Submission) string {
	err := sub.Validate()
	if err == nil {
		err = sub.CheckLengths()
	}

	var lengthErr *contact.LengthError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, contact.ErrMissingFields):
		return MsgRequiredFields
	case errors.Is(err, contact.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.As(err, &lengthErr):
		return lengthErr.Error() + "."
	default:
		return err.Error()
	}
}

// post sends one request and returns the message to show, or "" on success.
func (c *Client) post(ctx context.Context, sub contact.Submission) string {
	payload, err := json.Marshal(sub)
	if err != nil {
		return MsgSendFailed
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return MsgNetworkFailure
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MsgNetworkFailure
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ""
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err != nil || body.Error == "" {
		return MsgSendFailed
	}
	return body.Error
}

// String renders the state for logs and the CLI
func (c *Client) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errorMsg != "" {
		return fmt.Sprintf("%s: %s", c.status, c.errorMsg)
	}
	return string(c.status)
}
