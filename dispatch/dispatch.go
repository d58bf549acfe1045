// Package dispatch routes inbound channel messages: !stock command lines go to
// the stock handler, everything else through URL extraction and link
// enrichment. Each URL in a message is enriched on its own goroutine so a
// slow or failing fetch never blocks its siblings.
package dispatch

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/RUSTYJON/cathybot/chat"
	"github.com/RUSTYJON/cathybot/telemetry"
)

const commandPrefix = "!stock"

// Replier sends one line to a channel. Implementations must be safe for
// concurrent use.
type Replier interface {
	Say(channel, line string)
}

// Enricher turns one candidate URL into at most one reply line.
type Enricher interface {
	Enrich(ctx context.Context, rawURL string) (reply string, ok bool)
}

// Commander produces the single reply for a !stock command line.
type Commander interface {
	Handle(ctx context.Context, line string) string
}

// Dispatcher is the per-message control point. It holds no mutable state;
// every Handle call is a pure function of the message plus collaborator
// responses.
type Dispatcher struct {
	Replier  Replier
	Stock    Commander
	Enricher Enricher
}

// Handle triages one channel message. Command messages produce exactly one
// reply and skip enrichment entirely; plain messages produce at most one reply
// per extracted URL. Handle returns once all enrichment attempts for the
// message have finished; each attempt is bounded by the fetch timeout.
func (d *Dispatcher) Handle(ctx context.Context, msg chat.Message) {
	ctx = telemetry.WithCorrelation(ctx, uuid.New().String())
	ctx, span := telemetry.StartSpan(ctx, "dispatch", "dispatch.Handle",
		attribute.String("channel", msg.Channel))
	defer span.End()

	if strings.HasPrefix(msg.Text, commandPrefix) {
		telemetry.CommandsHandled.Inc()
		d.Replier.Say(msg.Channel, d.Stock.Handle(ctx, msg.Text))
		return
	}

	urls := ExtractURLs(msg.Text)
	if len(urls) == 0 {
		return
	}
	span.SetAttributes(attribute.Int("urls", len(urls)))

	var wg sync.WaitGroup
	for _, u := range urls {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			if reply, ok := d.Enricher.Enrich(ctx, raw); ok {
				d.Replier.Say(msg.Channel, reply)
			}
		}(u)
	}
	wg.Wait()
}
