package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "homescreen", cfg.AppName)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOMESCREEN_API_BASE_URL", "https://api.example.com/api")
	t.Setenv("HOMESCREEN_POLL_INTERVAL", "500ms")
	t.Setenv("HOMESCREEN_STATE_BACKEND", "redis")
	t.Setenv("HOMESCREEN_REDIS_PORT", "6380")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "redis", cfg.StateBackend)
	assert.Equal(t, 6380, cfg.RedisPort)
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("HOMESCREEN_STATE_BACKEND", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported state backend")
}

func TestLoadRejectsBadPollInterval(t *testing.T) {
	t.Setenv("HOMESCREEN_POLL_INTERVAL", "0s")

	_, err := Load()
	assert.Error(t, err)
}
