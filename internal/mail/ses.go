package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"quent-tech-backend/internal/config"
)

const charsetUTF8 = "UTF-8"

// SESAPI is the slice of the SES client the sender uses
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender sends through Amazon SES
type SESSender struct {
	client           SESAPI
	configurationSet string
}

// NewSESSender wraps an existing SES client
func NewSESSender(client SESAPI, configurationSet string) *SESSender {
	return &SESSender{client: client, configurationSet: configurationSet}
}

// NewSESSenderFromConfig loads the default AWS credential chain, honouring cfg.Region when set
func NewSESSenderFromConfig(ctx context.Context, cfg config.MailConfig) (*SESSender, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewSESSender(ses.NewFromConfig(awsCfg), cfg.ConfigurationSet), nil
}

// Send issues one SendEmail call
func (s *SESSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source:           aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: msg.To},
		ReplyToAddresses: msg.ReplyTo,
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String(charsetUTF8)},
			},
		},
	}
	if s.configurationSet != "" {
		input.ConfigurationSetName = aws.String(s.configurationSet)
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
