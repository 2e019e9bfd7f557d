// Package contact holds the contact-form submission and the rules every copy of it must pass
// before a notification is sent.
package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field length bounds, matching the limits on the website form.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 100
	MaxCompanyLength = 100
	MaxMessageLength = 5000
)

var (
	ErrMissingFields = errors.New("name, email, and message are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrTooLong       = errors.New("field too long")
)

// emailPattern accepts local@domain.tld with no whitespace and a single "@".
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is a single contact-form post. It is never stored.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot,omitempty"`
}

// UnmarshalJSON reads each field on its own so one badly typed value cannot hide the others.
// Visible fields that are not JSON strings are treated as absent. A honeypot of any type other
// than null, false, 0 or "" counts as filled.
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Submission{
		Name:     stringField(raw["name"]),
		Email:    stringField(raw["email"]),
		Company:  stringField(raw["company"]),
		Message:  stringField(raw["message"]),
		Honeypot: honeypotField(raw["honeypot"]),
	}
	return nil
}

func stringField(raw json.RawMessage) string {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func honeypotField(raw json.RawMessage) string {
	var v string
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}

	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false":
		return ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
		return ""
	}
	return string(raw)
}

// Normalized returns a copy with surrounding whitespace removed from the visible fields.
// The honeypot is left untouched so any content in it still counts.
func (s Submission) Normalized() Submission {
	return Submission{
		Name:     strings.TrimSpace(s.Name),
		Email:    strings.TrimSpace(s.Email),
		Company:  strings.TrimSpace(s.Company),
		Message:  strings.TrimSpace(s.Message),
		Honeypot: s.Honeypot,
	}
}

// Validate runs the required-field check followed by the email pattern check.
// Both the form client and the handler use it so they agree on what is acceptable.
func (s Submission) Validate() error {
	n := s.Normalized()
	if n.Name == "" || n.Email == "" || n.Message == "" {
		return ErrMissingFields
	}
	if !ValidEmail(n.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// CheckLengths reports the first field that exceeds its bound.
func (s Submission) CheckLengths() error {
	n := s.Normalized()
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"Name", n.Name, MaxNameLength},
		{"Email", n.Email, MaxEmailLength},
		{"Company", n.Company, MaxCompanyLength},
		{"Message", n.Message, MaxMessageLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return &LengthError{Field: l.field, Max: l.max}
		}
	}
	return nil
}

// ValidEmail reports whether addr looks like local-part@domain.tld.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// LengthError names the field that is over its limit.
type LengthError struct {
	Field string
	Max   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Field, e.Max)
}

func (e *LengthError) Unwrap() error { return ErrTooLong }
