package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_DotEnvFile(t *testing.T) {
	// godotenv does not override variables that are already set, so clear
	// them here; t.Setenv restores the previous values afterwards.
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("BOT_TOKEN")
	os.Unsetenv("LOG_LEVEL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TOKEN=from-file\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.BotToken)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_RejectsNegativeTTL(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SESSION_TTL", "-1m")

	_, err := Load()
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.in)
	}
}
