package chat

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/RUSTYJON/cathybot/config"
	"github.com/RUSTYJON/cathybot/telemetry"
)

// Message is one inbound channel message.
type Message struct {
	Channel string
	Sender  string
	Text    string
}

// Handler consumes inbound channel messages. Handle is called from the
// connection's reader loop, one message at a time, in receipt order.
type Handler interface {
	Handle(ctx context.Context, msg Message)
}

// Bot wraps the IRC client for a single channel.
type Bot struct {
	cfg       *config.Config
	client    *twitch.Client
	connected atomic.Bool
	runCtx    atomic.Pointer[context.Context]
}

// New builds the bot. With an oauth token the connection authenticates as the
// configured nick; without one it connects anonymously.
func New(cfg *config.Config) *Bot {
	var client *twitch.Client
	if cfg.OAuthToken != "" {
		client = twitch.NewClient(cfg.BotNick, cfg.OAuthToken)
	} else {
		client = twitch.NewAnonymousClient()
	}
	if cfg.Addr != "" {
		client.IrcAddress = cfg.Addr
		client.TLS = cfg.TLS
	}

	b := &Bot{cfg: cfg, client: client}

	client.OnConnect(func() {
		b.connected.Store(true)
		telemetry.SetConnected(true)
		if cfg.NickServPassword != "" {
			// One identify line to the registration service before joining.
			client.Say("nickserv", "IDENTIFY "+cfg.NickServPassword)
			slog.Debug("sent identify to registration service")
		}
		client.Join(cfg.Channel)
		slog.Info("connected, joined channel", slog.String("channel", cfg.Channel))
	})

	return b
}

// OnMessage registers the handler for inbound channel messages.
func (b *Bot) OnMessage(h Handler) {
	b.client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		telemetry.MessagesReceived.Inc()
		ctx := context.Background()
		if p := b.runCtx.Load(); p != nil {
			ctx = *p
		}
		h.Handle(ctx, Message{Channel: msg.Channel, Sender: msg.User.Name, Text: msg.Message})
	})
}

// Say sends one line to the channel. Safe for concurrent use.
func (b *Bot) Say(channel, line string) {
	b.client.Say(channel, line)
}

// Connected reports whether the IRC connection is up.
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

// Run connects and blocks until ctx is cancelled or the connection fails.
// A shutdown requested via ctx returns nil.
func (b *Bot) Run(ctx context.Context) error {
	b.runCtx.Store(&ctx)
	go func() {
		<-ctx.Done()
		if err := b.client.Disconnect(); err != nil {
			slog.Debug("disconnect", slog.Any("err", err))
		}
	}()

	err := b.client.Connect()
	b.connected.Store(false)
	telemetry.SetConnected(false)
	if errors.Is(err, twitch.ErrClientDisconnected) || ctx.Err() != nil {
		return nil
	}
	return err
}
