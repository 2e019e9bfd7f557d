package contact

import (
	"fmt"
	"strings"
)

const companyPlaceholder = "Not provided"

// Notification is the rendered email for one accepted submission.
type Notification struct {
	Subject string
	Body    string
	ReplyTo string
}

// NotificationTemplate carries the site details printed into every notification.
type NotificationTemplate struct {
	SiteName string // bracketed subject prefix, e.g. "Quent Tech"
	SiteHost string // footer, e.g. "quent-tech.com"
}

// Render builds the notification for a submission that already passed Validate.
// The message text is copied verbatim; reference is printed in the footer when set.
func (t NotificationTemplate) Render(s Submission, reference string) Notification {
	n := s.Normalized()

	company := n.Company
	if company == "" {
		company = companyPlaceholder
	}

	subject := "New Contact Form: " + n.Name
	if t.SiteName != "" {
		subject = fmt.Sprintf("[%s] %s", t.SiteName, subject)
	}

	var b strings.Builder
	b.WriteString("New contact form submission:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", n.Name)
	fmt.Fprintf(&b, "Email: %s\n", n.Email)
	fmt.Fprintf(&b, "Company: %s\n", company)
	b.WriteString("\nMessage:\n")
	b.WriteString(n.Message)
	b.WriteString("\n\n---\n")
	if t.SiteHost != "" {
		fmt.Fprintf(&b, "Sent from %s contact form", t.SiteHost)
	} else {
		b.WriteString("Sent from the website contact form")
	}
	if reference != "" {
		fmt.Fprintf(&b, "\nReference: %s", reference)
	}

	return Notification{
		Subject: subject,
		Body:    b.String(),
		ReplyTo: n.Email,
	}
}
