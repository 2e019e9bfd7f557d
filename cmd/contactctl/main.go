// Command contactctl submits a message to the contact endpoint the same way the website form does.
//
//	contactctl --name "Jane" --email jane@example.com --message "Hello"
//	echo "Hello" | contactctl --name "Jane" --email jane@example.com --message -
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"quent-tech-backend/internal/config"
	"quent-tech-backend/internal/formclient"
	"quent-tech-backend/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	flags := pflag.NewFlagSet("contactctl", pflag.ContinueOnError)
	apiURL := flags.String("api_url", cfg.Client.APIURL, "Base URL of the contact API")
	timeout := flags.Duration("timeout", cfg.Client.Timeout, "Submission timeout")
	name := flags.String("name", "", "Your name (required)")
	email := flags.String("email", "", "Your email address (required)")
	company := flags.String("company", "", "Company name")
	message := flags.String("message", "", `Message text (required); "-" reads it from stdin`)
	logLevel := flags.String("log_level", "warn", "Log level")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := logging.MustBuildLogger(*logLevel, cfg.Env)
	defer func() { _ = logger.Sync() }()

	if *message == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("failed to read message from stdin", zap.Error(err))
			return 1
		}
		*message = string(b)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := formclient.New(*apiURL, formclient.WithTimeout(*timeout))
	client.SetFields(formclient.Fields{
		Name:    *name,
		Email:   *email,
		Company: *company,
		Message: *message,
	})

	logger.Debug("submitting contact form", zap.String("api_url", *apiURL))
	if err := client.Submit(ctx); err != nil {
		logger.Error("submit failed", zap.Error(err))
		return 1
	}

	switch client.Status() {
	case formclient.StatusSent:
		fmt.Fprintln(stdout, "Message sent. We'll get back to you soon.")
		return 0
	default:
		fmt.Fprintln(stdout, client.ErrorMessage())
		return 1
	}
}
