package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Sessions
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0s"`

	// Abuse protection
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`

	// Metrics
	MetricsAddr string `env:"METRICS_ADDR"`

	// Telegram logging
	LogTelegramChatID int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError     int   `env:"LOG_TOPIC_ERROR"`
}

// Load reads optional dotenv files and then parses the environment.
// Variables already present in the environment win over file values.
func Load(files ...string) (*Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.SessionTTL < 0 {
		return nil, fmt.Errorf("parse config: SESSION_TTL must not be negative")
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("parse config: RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
