// Package server exposes the bot's observability HTTP surface: liveness,
// status, and Prometheus metrics. It injects correlation IDs into request
// contexts for consistent logging with the dispatcher.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RUSTYJON/cathybot/telemetry"
)

// StatusSource reports the bot's current connection state.
type StatusSource interface {
	Connected() bool
}

// NewMux returns the HTTP handler with all routes.
func NewMux(channel string, status StatusSource) http.Handler {
	h := &Handlers{started: time.Now(), channel: channel, status: status}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", h.HandleHealthz)
	mux.HandleFunc("/status", h.HandleStatus)

	// Correlation ID injector: reuse the header if provided else generate.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corr := r.Header.Get("X-Correlation-ID")
		if corr == "" {
			corr = uuid.New().String()
		}
		ctx := telemetry.WithCorrelation(r.Context(), corr)
		w.Header().Set("X-Correlation-ID", corr)
		mux.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Start runs the HTTP server on addr until ctx is cancelled.
func Start(ctx context.Context, addr, channel string, status StatusSource) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewMux(channel, status),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown", slog.Any("err", err))
		}
	}()
	slog.Info("http server listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
