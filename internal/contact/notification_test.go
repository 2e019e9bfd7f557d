package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNotification(t *testing.T) {
	tmpl := NotificationTemplate{SiteName: "Quent Tech", SiteHost: "quent-tech.com"}
	sub := Submission{
		Name:    "Jane",
		Email:   "jane@example.com",
		Company: "Acme",
		Message: "Hello\n  there",
	}

	n := tmpl.Render(sub, "ref-123")

	assert.Equal(t, "[Quent Tech] New Contact Form: Jane", n.Subject)
	assert.Equal(t, "jane@example.com", n.ReplyTo)

	want := "New contact form submission:\n\n" +
		"Name: Jane\n" +
		"Email: jane@example.com\n" +
		"Company: Acme\n" +
		"\nMessage:\n" +
		"Hello\n  there" +
		"\n\n---\n" +
		"Sent from quent-tech.com contact form\n" +
		"Reference: ref-123"
	assert.Equal(t, want, n.Body)
}

func TestRenderNotificationCompanyPlaceholder(t *testing.T) {
	n := NotificationTemplate{}.Render(Submission{Name: "A", Email: "a@b.com", Message: "hi"}, "")

	assert.Equal(t, "New Contact Form: A", n.Subject)
	assert.Contains(t, n.Body, "Company: Not provided\n")
	assert.Contains(t, n.Body, "Sent from the website contact form")
	assert.NotContains(t, n.Body, "Reference:")
}
