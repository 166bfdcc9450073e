package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpdatesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Count of processed updates",
		},
		[]string{"type"},
	)
	HandlerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_update_duration_seconds",
			Help:    "Time taken to process an update",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"type"},
	)
	SessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_sessions_started_total",
			Help: "Count of compatibility sessions started",
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions",
			Help: "Current number of chats with an open session",
		},
	)
	Renders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_renders_total",
			Help: "Count of compatibility renders",
		},
		[]string{"status"},
	)
	Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_rejections_total",
			Help: "Count of user input rejected by the bot",
		},
		[]string{"reason"},
	)
	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_failures_total",
			Help: "Count of failed API calls",
		},
		[]string{"method"},
	)
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, photo
	)
)

// Init registers all collectors with reg.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(
		UpdatesProcessed,
		HandlerDuration,
		SessionsStarted,
		ActiveSessions,
		Renders,
		Rejections,
		APIFailures,
		MessagesSent,
	)
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown", "error", err)
		}
	}()

	slog.Info("starting metrics server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
