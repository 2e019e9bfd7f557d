package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quent-tech-backend/internal/contact"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the application
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	Site      SiteConfig
	CORS      CORSConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Client    ClientConfig
}

// SiteConfig describes the website the contact endpoint serves
type SiteConfig struct {
	Name   string // used as the notification subject prefix
	Origin string // scheme+host of the site, e.g. https://quent-tech.com
}

// CORSConfig holds the permitted origins for cross-origin checks
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int // seconds
}

// MailConfig holds notification delivery configuration
type MailConfig struct {
	Driver            string // ses, smtp or log
	NotificationEmail string // sender and recipient of every notification
	Region            string
	ConfigurationSet  string
	Timeout           time.Duration
	SMTP              SMTPConfig
}

// SMTPConfig is only used when Mail.Driver is "smtp"
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
}

// RateLimitConfig bounds contact submissions per client IP
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Table    string // DynamoDB table shared by all Lambda containers; empty means in-memory
}

// ClientConfig is consumed by the form client
type ClientConfig struct {
	APIURL  string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Site: SiteConfig{
			Name:   getEnv("SITE_NAME", "Quent Tech"),
			Origin: getEnv("SITE_ORIGIN", "https://quent-tech.com"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvSlice("CORS_ORIGINS", []string{"https://quent-tech.com", "https://www.quent-tech.com"}),
			MaxAge:         getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Mail: MailConfig{
			Driver:            strings.ToLower(getEnv("MAIL_DRIVER", "ses")),
			NotificationEmail: getEnv("NOTIFICATION_EMAIL", "info@quent-tech.com"),
			Region:            getEnv("AWS_REGION", ""),
			ConfigurationSet:  getEnv("SES_CONFIGURATION_SET", ""),
			Timeout:           time.Duration(getEnvAsInt("MAIL_TIMEOUT_SECONDS", 10)) * time.Second,
			SMTP: SMTPConfig{
				Host:     getEnv("SMTP_HOST", ""),
				Port:     getEnvAsInt("SMTP_PORT", 0), // 0 lets the sender pick 587 or 465
				Username: getEnv("SMTP_USERNAME", ""),
				Password: getEnv("SMTP_PASSWORD", ""),
				UseSSL:   getEnvAsBool("SMTP_SSL", false),
			},
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 20),
			Window:   time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 10)) * time.Minute,
			Table:    getEnv("RATE_LIMIT_TABLE", ""),
		},
		Client: ClientConfig{
			APIURL:  getEnv("CONTACT_API_URL", "https://api.quent-tech.com"),
			Timeout: time.Duration(getEnvAsInt("CONTACT_CLIENT_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}

	return cfg, nil
}

// Validate checks the settings the contact endpoint cannot run without
func (c *Config) Validate() error {
	if !contact.ValidEmail(c.Mail.NotificationEmail) {
		return fmt.Errorf("%w: NOTIFICATION_EMAIL %q is not a valid address", ErrInvalidConfig, c.Mail.NotificationEmail)
	}
	if err := validOrigin(c.Site.Origin); err != nil {
		return fmt.Errorf("%w: SITE_ORIGIN: %v", ErrInvalidConfig, err)
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if err := validOrigin(origin); err != nil {
			return fmt.Errorf("%w: CORS_ORIGINS: %v", ErrInvalidConfig, err)
		}
	}
	switch c.Mail.Driver {
	case "ses", "log":
	case "smtp":
		if c.Mail.SMTP.Host == "" {
			return fmt.Errorf("%w: SMTP_HOST is required for the smtp mail driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown MAIL_DRIVER %q", ErrInvalidConfig, c.Mail.Driver)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// Origins returns the site origin followed by any extra permitted origins, without duplicates
func (c *Config) Origins() []string {
	seen := map[string]bool{c.Site.Origin: true}
	origins := []string{c.Site.Origin}
	for _, o := range c.CORS.AllowedOrigins {
		if !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}
	return origins
}

// SiteHost returns the host part of the site origin
func (c *Config) SiteHost() string {
	u, err := url.Parse(c.Site.Origin)
	if err != nil || u.Host == "" {
		return c.Site.Origin
	}
	return u.Host
}

func validOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must use http or https", origin)
	}
	if u.Host == "" || (u.Path != "" && u.Path != "/") {
		return fmt.Errorf("origin %q must be scheme and host only", origin)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		values := strings.Split(value, ",")
		out := values[:0]
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	return defaultValue
}
