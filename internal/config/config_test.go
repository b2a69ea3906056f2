package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads all config from env", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "test-token-123", cfg.TelegramBotToken)
		require.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	})

	t.Run("defaults materializer intervals", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultRecurringInterval, cfg.RecurringInterval)
		require.Equal(t, DefaultRecurringBackoff, cfg.RecurringBackoff)
	})

	t.Run("parses materializer intervals", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("RECURRING_INTERVAL_HOURS", "12")
		t.Setenv("RECURRING_BACKOFF_MINUTES", "5")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 12*time.Hour, cfg.RecurringInterval)
		require.Equal(t, 5*time.Minute, cfg.RecurringBackoff)
	})

	t.Run("ignores invalid intervals", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("RECURRING_INTERVAL_HOURS", "zero")
		t.Setenv("RECURRING_BACKOFF_MINUTES", "-3")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultRecurringInterval, cfg.RecurringInterval)
		require.Equal(t, DefaultRecurringBackoff, cfg.RecurringBackoff)
	})

	t.Run("fails without bot token", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("DATABASE_URL", "postgres://localhost/test")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
	})

	t.Run("fails without database URL", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL")
	})
}
