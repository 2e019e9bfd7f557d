package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"quent-tech-backend/internal/config"
)

// MockSESClient is a mock implementation of SESAPI
type MockSESClient struct {
	mock.Mock
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ses.SendEmailOutput)
	return out, args.Error(1)
}

func testMessage() Message {
	return Message{
		From:     "info@example.com",
		To:       []string{"info@example.com"},
		ReplyTo:  []string{"jane@example.com"},
		Subject:  "[Site] New Contact Form: Jane",
		TextBody: "Hello",
	}
}

func TestMessageValidate(t *testing.T) {
	assert.NoError(t, testMessage().Validate())

	noFrom := testMessage()
	noFrom.From = ""
	assert.ErrorIs(t, noFrom.Validate(), ErrInvalidMessage)

	noTo := testMessage()
	noTo.To = nil
	assert.ErrorIs(t, noTo.Validate(), ErrInvalidMessage)

	noBody := testMessage()
	noBody.TextBody = ""
	assert.ErrorIs(t, noBody.Validate(), ErrInvalidMessage)
}

func TestSESSender_Send(t *testing.T) {
	client := new(MockSESClient)
	sender := NewSESSender(client, "contact-form")

	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "info@example.com" &&
			assert.ObjectsAreEqual([]string{"info@example.com"}, in.Destination.ToAddresses) &&
			assert.ObjectsAreEqual([]string{"jane@example.com"}, in.ReplyToAddresses) &&
			aws.ToString(in.Message.Subject.Data) == "[Site] New Contact Form: Jane" &&
			aws.ToString(in.Message.Body.Text.Data) == "Hello" &&
			aws.ToString(in.Message.Body.Text.Charset) == "UTF-8" &&
			aws.ToString(in.ConfigurationSetName) == "contact-form"
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("abc")}, nil).Once()

	require.NoError(t, sender.Send(context.Background(), testMessage()))
	client.AssertExpectations(t)
}

func TestSESSender_SendError(t *testing.T) {
	client := new(MockSESClient)
	sender := NewSESSender(client, "")

	boom := errors.New("throttled")
	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.ConfigurationSetName == nil
	})).Return(nil, boom).Once()

	err := sender.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	client.AssertNumberOfCalls(t, "SendEmail", 1)
}

func TestSESSender_InvalidMessageSkipsCall(t *testing.T) {
	client := new(MockSESClient)
	sender := NewSESSender(client, "")

	err := sender.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrInvalidMessage)
	client.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestLogSender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewLogSender(zap.New(core))

	require.NoError(t, sender.Send(context.Background(), testMessage()))

	entries := logs.FilterMessage("mock email sent").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "[Site] New Contact Form: Jane", fields["subject"])
	assert.Equal(t, "info@example.com", fields["from"])
}

func TestSMTPSenderBuild(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com"}, 0)
	assert.Equal(t, 587, sender.cfg.Port)
	assert.Equal(t, 30*time.Second, sender.timeout)

	m, err := sender.build(testMessage())
	require.NoError(t, err)

	assert.Equal(t, []string{"<info@example.com>"}, m.GetFromString())
	assert.Equal(t, []string{"<info@example.com>"}, m.GetToString())
	assert.Equal(t, []string{"<jane@example.com>"}, m.GetGenHeader(gomail.HeaderReplyTo))
	assert.Equal(t, []string{"[Site] New Contact Form: Jane"}, m.GetGenHeader(gomail.HeaderSubject))
}

func TestNewSMTPSenderPortDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SMTPConfig
		want int
	}{
		{name: "starttls", cfg: config.SMTPConfig{Host: "smtp.example.com"}, want: 587},
		{name: "implicit tls", cfg: config.SMTPConfig{Host: "smtp.example.com", UseSSL: true}, want: 465},
		{name: "explicit port wins", cfg: config.SMTPConfig{Host: "smtp.example.com", Port: 2525, UseSSL: true}, want: 2525},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSMTPSender(tt.cfg, 0).cfg.Port)
		})
	}
}

func TestSMTPSenderBuildRejectsBadAddress(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com"}, time.Second)
	msg := testMessage()
	msg.ReplyTo = []string{"not an address"}

	_, err := sender.build(msg)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.MailConfig{Driver: "log"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = New(ctx, config.MailConfig{Driver: "smtp", SMTP: config.SMTPConfig{Host: "smtp.example.com"}}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, s)

	_, err = New(ctx, config.MailConfig{Driver: "pigeon"}, nil)
	assert.Error(t, err)
}
