package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/set-night/lovematch/internal/metrics"
)

const (
	limiterIdleTTL = 10 * time.Minute
	warnInterval   = time.Minute
)

type chatLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	warnedAt time.Time
}

// shouldWarn reports whether the chat has not been told about the limit recently.
func (l *chatLimiter) shouldWarn(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.warnedAt) < warnInterval {
		return false
	}
	l.warnedAt = now
	return true
}

// Limiter hands out one token bucket per chat.
type Limiter struct {
	mu        sync.Mutex
	perMinute int
	chats     *cache.Cache
}

// NewLimiter allows perMinute actionable updates per chat, with bursts of the same size.
func NewLimiter(perMinute int) *Limiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &Limiter{
		perMinute: perMinute,
		chats:     cache.New(limiterIdleTTL, limiterIdleTTL),
	}
}

func (l *Limiter) get(chatID int64) *chatLimiter {
	key := strconv.FormatInt(chatID, 10)

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.chats.Get(key); ok {
		cl := v.(*chatLimiter)
		l.chats.SetDefault(key, cl)
		return cl
	}
	cl := &chatLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute),
	}
	l.chats.SetDefault(key, cl)
	return cl
}

// Allow consumes a token for chatID.
func (l *Limiter) Allow(chatID int64) bool {
	return l.get(chatID).limiter.Allow()
}

// actionable reports whether the bot would react to the update.
func actionable(update *models.Update) bool {
	switch UpdateType(update) {
	case "command", "photo", "document":
		return true
	default:
		return false
	}
}

// RateLimit returns middleware that enforces per-minute rate limits per chat.
// A zero perMinute disables limiting.
func RateLimit(perMinute int) bot.Middleware {
	if perMinute <= 0 {
		return func(next bot.HandlerFunc) bot.HandlerFunc { return next }
	}
	limiter := NewLimiter(perMinute)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit updates that make the bot do work
			if !actionable(update) {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			cl := limiter.get(chatID)
			if cl.limiter.Allow() {
				next(ctx, b, update)
				return
			}

			slog.Debug("rate limited", "chat_id", chatID, "limit", perMinute)
			metrics.Rejections.WithLabelValues("rate_limited").Inc()
			if !cl.shouldWarn(time.Now()) {
				return
			}
			_, err := b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "⏳ Слишком много запросов. Подождите немного.",
			})
			if err != nil {
				slog.Error("send rate limit notice", "error", err, "chat_id", chatID)
			}
		}
	}
}
