// Package youtubeapi wraps the YouTube Data API for the single purpose of
// looking up video titles by id. Titles are public metadata, so a plain API
// key is enough; no OAuth flow is involved.
package youtubeapi

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

type Service struct {
	apiKey string
	opts   []option.ClientOption
}

// New builds the service. Extra options are appended after the API key, which
// lets tests point the client at a local server.
func New(apiKey string, opts ...option.ClientOption) *Service {
	return &Service{apiKey: apiKey, opts: opts}
}

// VideoTitle returns the title of the video with the given id.
func (s *Service) VideoTitle(ctx context.Context, id string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("youtube api key not configured")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(s.apiKey)}, s.opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("youtube service: %w", err)
	}
	res, err := svc.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("videos.list: %w", err)
	}
	if len(res.Items) == 0 || res.Items[0].Snippet == nil {
		return "", fmt.Errorf("video not found: %s", id)
	}
	return res.Items[0].Snippet.Title, nil
}
