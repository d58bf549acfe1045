package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const (
	userAgent    = "Mozilla/5.0 (compatible; cathybot/1.0)"
	maxBodyBytes = 2 << 20
)

// fetchHTML GETs url and parses the body as HTML. Non-2xx statuses are errors.
// The body read is capped at maxBodyBytes; html.Parse tolerates the
// truncation.
func fetchHTML(ctx context.Context, client *http.Client, url string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
}

// findTitle returns the text content of the first <title> element, or "".
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// findMetaDescription returns the content attribute of the first
// <meta name="description"> element, or "".
func findMetaDescription(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "meta" &&
		strings.EqualFold(getAttr(n, "name"), "description") {
		return getAttr(n, "content")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if desc := findMetaDescription(c); desc != "" {
			return desc
		}
	}
	return ""
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
