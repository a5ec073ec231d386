package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef0123456789abcdef"

var configEnvVars = []string{
	"PORT", "API_KEY", "ENVIRONMENT", "SERVICE_NAME", "VERSION",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
	"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
	"DB_MAX_CONNS", "DB_MAX_IDLE", "DB_MAX_LIFE",
	"EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEADLETTER_PATH",
	"OVERDUE_SWEEP_INTERVAL",
}

// clearEnvVars unsets all config env vars for the duration of the test.
// t.Setenv registers the restore; os.Unsetenv then clears the value.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", testAPIKey)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, testAPIKey, cfg.APIKey)
		assert.Equal(t, time.Hour, cfg.OverdueSweepInterval)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", testAPIKey)
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("DB_USER", "customuser")
		t.Setenv("DB_PASSWORD", "custompass")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_NAME", "customdb")
		t.Setenv("OVERDUE_SWEEP_INTERVAL", "15m")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, testAPIKey, cfg.APIKey)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, "customuser", cfg.DBUser)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, "customdb", cfg.DBName)
		assert.Equal(t, 15*time.Minute, cfg.OverdueSweepInterval)
	})

	t.Run("rejects missing API key", func(t *testing.T) {
		clearEnvVars(t)

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects short API key", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "too-short")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", testAPIKey)
		t.Setenv("PORT", "not-a-number")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", testAPIKey)
		t.Setenv("OVERDUE_SWEEP_INTERVAL", "whenever")

		_, err := Load()

		assert.Error(t, err)
	})

	t.Run("rejects unknown environment", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", testAPIKey)
		t.Setenv("ENVIRONMENT", "production-ish")

		_, err := Load()

		assert.Error(t, err)
	})
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "h",
		DBPort:     "5432",
		DBName:     "d",
	}

	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}
