package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/set-night/lovematch/internal/config"
	"github.com/set-night/lovematch/internal/handler"
	"github.com/set-night/lovematch/internal/metrics"
	"github.com/set-night/lovematch/internal/middleware"
	"github.com/set-night/lovematch/internal/service"
	"github.com/set-night/lovematch/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	metrics.Init(prometheus.DefaultRegisterer)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, prometheus.DefaultGatherer); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	// Initialize services
	compositor, err := service.NewCompositor()
	if err != nil {
		slog.Error("failed to create compositor", "error", err)
		os.Exit(1)
	}
	sessions := service.NewSessionStore(cfg.SessionTTL)
	analyzer := service.NewAnalyzer()

	// The logger needs the bot, and the bot's middlewares need the logger
	tgLogger := telegram.NewTelegramLogger(nil, cfg)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(tgLogger),
			middleware.Metrics(),
			middleware.Logging(),
			middleware.RateLimit(cfg.RateLimitPerMinute),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			slog.Debug("unhandled update", "update_id", update.ID, "type", middleware.UpdateType(update))
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	tgLogger.SetBot(b)

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler
	h := handler.New(handler.Deps{
		Messenger:  telegram.NewClient(b),
		Sessions:   sessions,
		Analyzer:   analyzer,
		Compositor: compositor,
		TgLogger:   tgLogger,
	})

	// Register all handlers
	h.Register(b)

	// Keep the sessions gauge in step with TTL expiry
	go func() {
		ticker := time.NewTicker(config.SessionGaugeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.ActiveSessions.Set(float64(sessions.Count()))
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
