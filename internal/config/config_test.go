package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_ENV", "LOG_LEVEL", "LOG_TO_FILE", "SESSION_TTL_HOURS", "MAX_UPLOAD_MB", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.LogToFile)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("LOG_TO_FILE", "false")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("MAX_UPLOAD_MB", "1")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "production", cfg.Env)
	require.False(t, cfg.LogToFile)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "ttl not a number", key: "SESSION_TTL_HOURS", value: "abc"},
		{name: "ttl zero", key: "SESSION_TTL_HOURS", value: "0"},
		{name: "upload negative", key: "MAX_UPLOAD_MB", value: "-3"},
		{name: "log to file", key: "LOG_TO_FILE", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
