package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/lovematch/internal/telegram"
)

// Recover returns middleware that recovers from panics.
func Recover(tgLogger *telegram.TelegramLogger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					stack := string(debug.Stack())
					slog.Error("panic recovered in handler",
						"panic", r,
						"stack", stack,
					)
					tgLogger.LogPanic(r, stack)
				}
			}()
			next(ctx, b, update)
		}
	}
}
