// Command cathybot is a single-channel IRC relay bot. It:
//   - Loads configuration and initializes structured logging.
//   - Connects to the configured IRC server, identifies to the registration
//     service when a password is set, and joins one channel.
//   - Replies to !stock commands with a tiered price summary and enriches
//     posted links with a video title or page title/description.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/RUSTYJON/cathybot/chat"
	"github.com/RUSTYJON/cathybot/config"
	"github.com/RUSTYJON/cathybot/dispatch"
	"github.com/RUSTYJON/cathybot/enrich"
	"github.com/RUSTYJON/cathybot/server"
	"github.com/RUSTYJON/cathybot/stock"
	"github.com/RUSTYJON/cathybot/telemetry"
	"github.com/RUSTYJON/cathybot/yahooapi"
	"github.com/RUSTYJON/cathybot/youtubeapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.ValidateChatReady(); err != nil {
		slog.Error("chat config incomplete", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("cathybot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Enrichment pipeline: video titles via the Data API when a key is set,
	// otherwise by scraping the public watch page.
	var titles enrich.TitleResolver
	if cfg.YouTubeAPIKey != "" {
		titles = youtubeapi.New(cfg.YouTubeAPIKey)
		slog.Info("video titles via youtube data api")
	}
	enricher := enrich.New(cfg.FetchTimeout, titles)

	provider := &yahooapi.Client{HTTPClient: &http.Client{Timeout: cfg.FetchTimeout}}
	stockHandler := &stock.Handler{Provider: provider}

	bot := chat.New(cfg)
	bot.OnMessage(&dispatch.Dispatcher{
		Replier:  bot,
		Stock:    stockHandler,
		Enricher: enricher,
	})

	// HTTP server (health/status/metrics)
	go func() {
		if err := server.Start(ctx, cfg.HTTPAddr, cfg.Channel, bot); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	if err := bot.Run(ctx); err != nil {
		slog.Error("chat connection failed", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("shutting down")
}
