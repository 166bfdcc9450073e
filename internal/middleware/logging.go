package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/metrics"
)

// UpdateType classifies an update for logs and metrics.
func UpdateType(update *models.Update) string {
	switch {
	case update.Message == nil:
		return "other"
	case len(update.Message.Photo) > 0:
		return "photo"
	case update.Message.Document != nil:
		return "document"
	case len(update.Message.Text) > 0 && update.Message.Text[0] == '/':
		return "command"
	default:
		return "message"
	}
}

// Logging returns middleware that logs update processing time.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()

			updateType := UpdateType(update)
			var chatID int64
			var userID int64

			if update.Message != nil {
				chatID = update.Message.Chat.ID
				if update.Message.From != nil {
					userID = update.Message.From.ID
				}
			}

			next(ctx, b, update)

			slog.Debug("update processed",
				"type", updateType,
				"chat_id", chatID,
				"user_id", userID,
				"duration", time.Since(start),
			)
		}
	}
}

// Metrics returns middleware that counts updates and observes handler latency.
func Metrics() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			updateType := UpdateType(update)
			start := time.Now()
			defer func() {
				metrics.UpdatesProcessed.WithLabelValues(updateType).Inc()
				metrics.HandlerDuration.WithLabelValues(updateType).Observe(time.Since(start).Seconds())
			}()
			next(ctx, b, update)
		}
	}
}
