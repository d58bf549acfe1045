// Package telemetry provides Prometheus metrics, tracing setup, and correlation-id
// aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	MessagesReceived   prometheus.Counter
	CommandsHandled    prometheus.Counter
	EnrichmentAttempts prometheus.Counter
	EnrichmentReplies  prometheus.Counter
	EnrichmentSkips    prometheus.Counter
	StockLookups       prometheus.Counter
	StockLookupErrors  prometheus.Counter

	// Histograms (seconds)
	EnrichmentDuration  prometheus.Observer
	StockLookupDuration prometheus.Observer

	// Gauges
	ConnectedGauge prometheus.Gauge // 1=connected,0=disconnected
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_messages_received_total", Help: "Number of channel messages received"})
		CommandsHandled = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_commands_handled_total", Help: "Number of !stock commands handled"})
		EnrichmentAttempts = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_enrichment_attempts_total", Help: "Number of URL enrichment attempts"})
		EnrichmentReplies = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_enrichment_replies_total", Help: "Number of enrichment attempts that produced a reply"})
		EnrichmentSkips = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_enrichment_skips_total", Help: "Number of enrichment attempts silently skipped"})
		StockLookups = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_stock_lookups_total", Help: "Number of price provider lookups"})
		StockLookupErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "cathybot_stock_lookup_errors_total", Help: "Number of price provider lookups that failed"})
		EnrichmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "cathybot_enrichment_duration_seconds", Help: "URL enrichment duration seconds", Buckets: prometheus.DefBuckets})
		StockLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "cathybot_stock_lookup_duration_seconds", Help: "Price lookup duration seconds", Buckets: prometheus.DefBuckets})
		ConnectedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "cathybot_chat_connected", Help: "IRC connection up=1 down=0"})
	})
}

// SetConnected sets the connection gauge to 1 if up else 0.
func SetConnected(up bool) {
	if ConnectedGauge == nil {
		return
	}
	if up {
		ConnectedGauge.Set(1)
	} else {
		ConnectedGauge.Set(0)
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns the correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with a corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
