// Package app assembles the contact API from configuration. Both the Lambda and the local
// server binaries call NewHandler so they serve the same routes.
package app

import (
	"context"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"quent-tech-backend/internal/config"
	"quent-tech-backend/internal/contact"
	"quent-tech-backend/internal/http/handlers"
	"quent-tech-backend/internal/http/router"
	"quent-tech-backend/internal/mail"
	"quent-tech-backend/internal/ratelimit"
)

// NewHandler builds the mail sender, the rate limiter and the router for cfg
func NewHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	sender, err := mail.New(ctx, cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("mail sender: %w", err)
	}

	limit := ratelimit.Options{
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	}
	if cfg.RateLimit.Table != "" {
		counter, err := newDynamoCounter(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		limit.Counter = counter
		logger.Info("rate limit counts shared through DynamoDB", zap.String("table", cfg.RateLimit.Table))
	}

	contactHandler := handlers.NewContactHandler(handlers.ContactConfig{
		NotificationEmail: cfg.Mail.NotificationEmail,
		Template: contact.NotificationTemplate{
			SiteName: cfg.Site.Name,
			SiteHost: cfg.SiteHost(),
		},
		DispatchTimeout: cfg.Mail.Timeout,
	}, sender, contact.Honeypot{}, logger)

	return router.Setup(cfg, router.Deps{
		Contact:   contactHandler,
		RateLimit: limit,
		Logger:    logger,
	}), nil
}

func newDynamoCounter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ratelimit.DynamoCounter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Mail.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Mail.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ratelimit.NewDynamoCounter(dynamodb.NewFromConfig(awsCfg), cfg.RateLimit.Table, logger), nil
}
