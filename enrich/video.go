package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/RUSTYJON/cathybot/telemetry"
)

const videoReplyPrefix = "YouTube Title: "

// videoIDMarkers are tried in order; the first marker present in the URL wins.
// The id runs from just after the marker to the cut string, or to the end of
// the URL when the cut is absent.
var videoIDMarkers = []struct {
	marker string
	cut    string
}{
	{"watch?v=", "&"},
	{"/shorts/", "?"},
	{"youtu.be/", "?"},
}

// VideoID extracts the video identifier from a video-site URL, or "" when the
// URL matches none of the known markers.
func VideoID(rawURL string) string {
	for _, m := range videoIDMarkers {
		if _, rest, ok := strings.Cut(rawURL, m.marker); ok {
			id, _, _ := strings.Cut(rest, m.cut)
			return id
		}
	}
	return ""
}

func (e *Enricher) enrichVideo(ctx context.Context, rawURL string) Result {
	id := VideoID(rawURL)
	if id == "" {
		return Result{Skip: "no video id marker"}
	}
	title, err := e.titles.VideoTitle(ctx, id)
	if err != nil {
		telemetry.LoggerWithCorr(ctx).Warn("video title lookup failed",
			slog.String("id", id), slog.Any("err", err))
		return Result{Skip: "title lookup failed"}
	}
	return Result{Text: videoReplyPrefix + title}
}

// PageTitleResolver resolves a video title by fetching the public watch page
// and reading its <title>, the way a browser would. It needs no credentials.
type PageTitleResolver struct {
	Client  *http.Client
	BaseURL string // override for tests; defaults to the public watch URL
}

func (r *PageTitleResolver) VideoTitle(ctx context.Context, id string) (string, error) {
	base := r.BaseURL
	if base == "" {
		base = "https://www.youtube.com/watch?v="
	}
	doc, err := fetchHTML(ctx, r.Client, base+id)
	if err != nil {
		return "", err
	}
	title := findTitle(doc)
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("watch page has no title")
	}
	// The page title carries the site name as a suffix.
	return strings.TrimSpace(strings.ReplaceAll(title, "- YouTube", "")), nil
}
