package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"go.uber.org/zap"

	"quent-tech-backend/internal/app"
	"quent-tech-backend/internal/config"
	"quent-tech-backend/internal/logging"
)

var httpAdapter *httpadapter.HandlerAdapterV2

func init() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := logging.MustBuildLogger(cfg.LogLevel, cfg.Env)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	h, err := app.NewHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to build handler", zap.Error(err))
	}

	// Create the HTTP adapter for API Gateway HTTP API (v2). The adapter sets RemoteAddr to
	// the gateway's sourceIp, which is what the rate limiter keys on.
	httpAdapter = httpadapter.NewV2(http.Handler(h))

	logger.Info("contact lambda initialised",
		zap.String("mail_driver", cfg.Mail.Driver),
		zap.Strings("origins", cfg.Origins()),
	)
}

func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return httpAdapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
