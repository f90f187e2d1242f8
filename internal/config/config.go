package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"slack_form_bot/internal/storage"
)

// Environment represents the running environment of the application
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

const (
	defaultLogLevel   = "info"
	defaultSecretsKey = "slack/secrets.json"
)

// Config holds all configuration for the application.
// It is built once at startup and read-only afterwards.
type Config struct {
	// Environment is the current running environment (development, production, test)
	Environment Environment

	// Slack configuration
	SlackBotToken      string // Required: Slack bot user OAuth token
	SlackSigningSecret string // Required: Slack app signing secret

	// Optional S3 object holding the Slack secrets, used when they are not set in the environment
	SecretsBucket string
	SecretsKey    string

	// Log level
	LogLevel string
}

// Load creates a new Config instance from environment variables.
// Missing Slack secrets are read from S3 when SECRETS_BUCKET is set.
func Load(ctx context.Context) (*Config, error) {
	cfg := fromEnv()

	if cfg.SecretsBucket != "" && cfg.missingSecrets() {
		store, err := storage.NewDefaultS3SecretStore(ctx, cfg.SecretsBucket, cfg.SecretsKey)
		if err != nil {
			return nil, err
		}
		if err := cfg.fillSecrets(ctx, store); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		Environment:        Environment(getEnv("ENVIRONMENT", string(Production))),
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackSigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		SecretsBucket:      os.Getenv("SECRETS_BUCKET"),
		SecretsKey:         getEnv("SECRETS_KEY", defaultSecretsKey),
		LogLevel:           getEnv("LOG_LEVEL", defaultLogLevel),
	}
}

func (c *Config) missingSecrets() bool {
	return c.SlackBotToken == "" || c.SlackSigningSecret == ""
}

// fillSecrets sets the secrets that the environment left empty.
// Environment values always win over stored ones.
func (c *Config) fillSecrets(ctx context.Context, store storage.SecretStore) error {
	secrets, err := store.GetSecrets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if c.SlackBotToken == "" {
		c.SlackBotToken = secrets.SlackBotToken
	}
	if c.SlackSigningSecret == "" {
		c.SlackSigningSecret = secrets.SlackSigningSecret
	}
	return nil
}

// Validate reports every missing or invalid setting at once.
func (c *Config) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"SLACK_BOT_TOKEN", c.SlackBotToken},
		{"SLACK_SIGNING_SECRET", c.SlackSigningSecret},
	}

	var missingVars []string
	for _, r := range required {
		if r.value == "" {
			missingVars = append(missingVars, r.env)
		}
	}
	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid ENVIRONMENT %q", c.Environment)
	}
	return nil
}

// IsDevelopment reports whether the app runs locally
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
