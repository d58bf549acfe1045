// Package enrich fetches and summarizes content behind URLs posted in chat.
// URLs on a video-sharing domain go through the video-title strategy, all
// others through the generic page strategy. Failures never propagate: a fetch
// or parse error degrades to "no reply" for that URL.
package enrich

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RUSTYJON/cathybot/telemetry"
)

// Result is the outcome of one enrichment attempt. A non-empty Skip records
// why no reply was produced; otherwise Text is the reply line.
type Result struct {
	Text string
	Skip string
}

// TitleResolver resolves a video id to its title.
type TitleResolver interface {
	VideoTitle(ctx context.Context, id string) (string, error)
}

// Enricher executes the per-URL enrichment strategies.
type Enricher struct {
	client  *http.Client
	timeout time.Duration
	titles  TitleResolver
}

// New builds an Enricher whose outbound fetches are bounded by timeout.
// A nil titles resolver falls back to scraping the public watch page.
func New(timeout time.Duration, titles TitleResolver) *Enricher {
	client := &http.Client{Timeout: timeout}
	if titles == nil {
		titles = &PageTitleResolver{Client: client}
	}
	return &Enricher{client: client, timeout: timeout, titles: titles}
}

// Enrich runs the matching strategy for rawURL and reports the reply line, if
// any. It never returns an error: failures are logged and reported as ok=false.
func (e *Enricher) Enrich(ctx context.Context, rawURL string) (string, bool) {
	telemetry.EnrichmentAttempts.Inc()
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var res Result
	telemetry.TimeFunc(telemetry.EnrichmentDuration, func() {
		if isVideoURL(rawURL) {
			res = e.enrichVideo(ctx, rawURL)
		} else {
			res = e.enrichPage(ctx, rawURL)
		}
	})

	if res.Skip != "" {
		telemetry.EnrichmentSkips.Inc()
		telemetry.LoggerWithCorr(ctx).Debug("enrichment skipped",
			slog.String("url", rawURL), slog.String("reason", res.Skip))
		return "", false
	}
	telemetry.EnrichmentReplies.Inc()
	return res.Text, true
}

func isVideoURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}
