package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklib/internal/asset"
)

// clearEnv resets every variable LoadFromEnv reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORAGE_BACKEND", "LIBRARY_FILE",
		"CLICKHOUSE_HOST", "CLICKHOUSE_PORT", "CLICKHOUSE_DATABASE",
		"CLICKHOUSE_USER", "CLICKHOUSE_PASSWORD", "CLICKHOUSE_USE_TLS",
		"PORT", "TELEGRAM_BOT_TOKEN", "ALLOWED_USER_IDS", "WEBHOOK_MODE", "WEBHOOK_URL",
		"ADD_DELAY", "ANIMATION_URL", "ANIMATION_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.Equal(t, "library.json", cfg.LibraryFile)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.BotEnabled())
	assert.Equal(t, time.Duration(0), cfg.AddDelay)
	assert.Equal(t, asset.DefaultAnimationURL, cfg.AnimationURL)
	assert.Equal(t, 5*time.Second, cfg.AnimationTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv_ClickHouse(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "ClickHouse")
	t.Setenv("CLICKHOUSE_HOST", "db.local")
	t.Setenv("CLICKHOUSE_USE_TLS", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendClickHouse, cfg.StorageBackend)
	assert.Equal(t, "db.local", cfg.ClickHouseHost)
	assert.Equal(t, 9000, cfg.ClickHousePort)
	assert.Equal(t, "default", cfg.ClickHouseDatabase)
	assert.Equal(t, "default", cfg.ClickHouseUser)
	assert.True(t, cfg.ClickHouseUseTLS)
}

func TestLoadFromEnv_Bot(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("ALLOWED_USER_IDS", "123, 456")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.BotEnabled())
	assert.Equal(t, []int64{123, 456}, cfg.AllowedUserIDs)
	assert.False(t, cfg.WebhookMode)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "postgres"}},
		{"clickhouse without host", map[string]string{"STORAGE_BACKEND": "clickhouse"}},
		{"bad clickhouse port", map[string]string{"STORAGE_BACKEND": "clickhouse", "CLICKHOUSE_HOST": "h", "CLICKHOUSE_PORT": "abc"}},
		{"token without users", map[string]string{"TELEGRAM_BOT_TOKEN": "token"}},
		{"bad user id", map[string]string{"TELEGRAM_BOT_TOKEN": "token", "ALLOWED_USER_IDS": "1,two"}},
		{"webhook without url", map[string]string{"TELEGRAM_BOT_TOKEN": "token", "ALLOWED_USER_IDS": "1", "WEBHOOK_MODE": "true"}},
		{"bad add delay", map[string]string{"ADD_DELAY": "soon"}},
		{"negative add delay", map[string]string{"ADD_DELAY": "-1s"}},
		{"bad animation timeout", map[string]string{"ANIMATION_TIMEOUT": "5"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}
