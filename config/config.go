package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SESConfig holds credentials for the AWS SES alert mailer.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// EmailConfig holds settings for the operator alert mailer.
type EmailConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	AlertTo     string
	SES         SESConfig
}

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	StripeAPIKey        string
	StripeWebhookSecret string

	TelegramBotToken string
	TelegramGroupID  int64

	InviteTTL time.Duration

	CORSAllowedOrigins []string

	Email EmailConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:         env,
		Port:                os.Getenv("PORT"),
		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		Email: EmailConfig{
			Provider:    os.Getenv("EMAIL_PROVIDER"),
			FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:    os.Getenv("EMAIL_FROM_NAME"),
			AlertTo:     os.Getenv("ALERT_EMAIL_TO"),
			SES: SESConfig{
				Region:             os.Getenv("SES_REGION"),
				AccessKeyID:        os.Getenv("SES_ACCESS_KEY_ID"),
				SecretAccessKey:    os.Getenv("SES_SECRET_ACCESS_KEY"),
				InsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
			},
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if s := os.Getenv("TELEGRAM_GROUP_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_GROUP_ID %q: %w", s, err)
		}
		cfg.TelegramGroupID = id
	}

	// Invite links are single use and expire an hour after issuance unless
	// overridden. The messaging platform enforces both constraints.
	cfg.InviteTTL = time.Hour
	if s := os.Getenv("INVITE_TTL_SECONDS"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid INVITE_TTL_SECONDS %q", s)
		}
		cfg.InviteTTL = time.Duration(secs) * time.Second
	}

	if s := os.Getenv("CORS_ALLOWED_ORIGINS"); s != "" {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// Validate checks that the secrets the payment and messaging integrations
// cannot run without are present.
func (c *Config) Validate() error {
	if c.StripeAPIKey == "" {
		return fmt.Errorf("STRIPE_API_KEY is required")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramGroupID == 0 {
		return fmt.Errorf("TELEGRAM_GROUP_ID is required")
	}
	return nil
}
