package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RUSTYJON/cathybot/telemetry"
)

const (
	noTitle       = "No Title"
	noDescription = "No Description"
)

func (e *Enricher) enrichPage(ctx context.Context, rawURL string) Result {
	doc, err := fetchHTML(ctx, e.client, rawURL)
	if err != nil {
		telemetry.LoggerWithCorr(ctx).Warn("page fetch failed",
			slog.String("url", rawURL), slog.Any("err", err))
		return Result{Skip: "fetch failed"}
	}

	title := strings.TrimSpace(findTitle(doc))
	if title == "" {
		title = noTitle
	}
	desc := strings.TrimSpace(findMetaDescription(doc))
	if desc == "" {
		desc = noDescription
	}
	return Result{Text: fmt.Sprintf("Page Info: Title: %s, Description: %s", title, desc)}
}
