// Package config loads environment variables and provides a typed Config used across the bot.
// It applies sensible defaults so the binary can run locally with minimal setup.
// For required chat credentials, use ValidateChatReady.
package config

import (
	"fmt"
	"os"
	"time"
)

// DefaultFetchTimeout bounds every outbound enrichment fetch unless
// FETCH_TIMEOUT overrides it.
const DefaultFetchTimeout = 10 * time.Second

type Config struct {
	// IRC
	Channel          string
	BotNick          string
	Addr             string
	TLS              bool
	OAuthToken       string
	NickServPassword string

	// Enrichment
	FetchTimeout time.Duration

	// YouTube
	YouTubeAPIKey string

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if chat creds are
// missing; use ValidateChatReady() when you require the IRC connection. Missing optional
// variables disable features (e.g. the YouTube Data API title resolver).
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Channel = os.Getenv("IRC_CHANNEL")
	cfg.BotNick = os.Getenv("IRC_BOT_NICK")
	cfg.OAuthToken = os.Getenv("IRC_OAUTH_TOKEN")
	cfg.NickServPassword = os.Getenv("NICKSERV_PASSWORD")

	cfg.Addr = os.Getenv("IRC_ADDR")
	if cfg.Addr == "" {
		cfg.Addr = "irc.chat.twitch.tv:6697"
	}
	cfg.TLS = true
	switch os.Getenv("IRC_TLS") {
	case "0", "false", "no":
		cfg.TLS = false
	}

	cfg.FetchTimeout = DefaultFetchTimeout
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT (duration): %q", v)
		}
		cfg.FetchTimeout = d
	}

	cfg.YouTubeAPIKey = os.Getenv("YOUTUBE_API_KEY")

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateChatReady checks required fields for joining chat.
func (c *Config) ValidateChatReady() error {
	if c.Channel == "" || c.BotNick == "" {
		return fmt.Errorf("missing irc env: require IRC_CHANNEL, IRC_BOT_NICK")
	}
	return nil
}
