// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the recurring materializer loop.
const (
	DefaultRecurringInterval = 6 * time.Hour
	DefaultRecurringBackoff  = 10 * time.Minute
)

// Config holds all configuration for the application.
type Config struct {
	TelegramBotToken  string
	DatabaseURL       string
	LogLevel          string
	RecurringInterval time.Duration
	RecurringBackoff  time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		RecurringInterval: DefaultRecurringInterval,
		RecurringBackoff:  DefaultRecurringBackoff,
	}

	if hoursStr := os.Getenv("RECURRING_INTERVAL_HOURS"); hoursStr != "" {
		if h, err := strconv.Atoi(hoursStr); err == nil && h > 0 {
			cfg.RecurringInterval = time.Duration(h) * time.Hour
		}
	}
	if minutesStr := os.Getenv("RECURRING_BACKOFF_MINUTES"); minutesStr != "" {
		if m, err := strconv.Atoi(minutesStr); err == nil && m > 0 {
			cfg.RecurringBackoff = time.Duration(m) * time.Minute
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.TelegramBotToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
