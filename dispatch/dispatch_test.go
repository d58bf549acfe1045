package dispatch

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/RUSTYJON/cathybot/chat"
	"github.com/RUSTYJON/cathybot/telemetry"
)

func TestMain(m *testing.M) {
	telemetry.Init()
	m.Run()
}

type fakeReplier struct {
	mu    sync.Mutex
	lines []string
}

func (r *fakeReplier) Say(channel, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, channel+"|"+line)
}

func (r *fakeReplier) sorted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.lines...)
	sort.Strings(out)
	return out
}

type fakeEnricher struct {
	mu      sync.Mutex
	replies map[string]string // url -> reply; missing url means skip
	calls   []string
}

func (e *fakeEnricher) Enrich(_ context.Context, rawURL string) (string, bool) {
	e.mu.Lock()
	e.calls = append(e.calls, rawURL)
	e.mu.Unlock()
	reply, ok := e.replies[rawURL]
	return reply, ok
}

type fakeCommander struct {
	reply string
	calls int
}

func (c *fakeCommander) Handle(_ context.Context, line string) string {
	c.calls++
	return c.reply
}

func msg(text string) chat.Message {
	return chat.Message{Channel: "guns", Sender: "someone", Text: text}
}

func TestHandleCommandSkipsEnrichment(t *testing.T) {
	replier := &fakeReplier{}
	enricher := &fakeEnricher{replies: map[string]string{"https://x.example": "never"}}
	commander := &fakeCommander{reply: "AAPL is fine"}
	d := &Dispatcher{Replier: replier, Stock: commander, Enricher: enricher}

	// A command message containing a URL must still go to the stock handler only.
	d.Handle(context.Background(), msg("!stock AAPL https://x.example"))

	if commander.calls != 1 {
		t.Errorf("commander calls = %d, want 1", commander.calls)
	}
	if len(enricher.calls) != 0 {
		t.Errorf("enricher called %d times for a command message, want 0", len(enricher.calls))
	}
	if got := replier.sorted(); len(got) != 1 || got[0] != "guns|AAPL is fine" {
		t.Errorf("replies = %v, want single command reply", got)
	}
}

func TestHandleZeroURLsZeroReplies(t *testing.T) {
	replier := &fakeReplier{}
	d := &Dispatcher{Replier: replier, Stock: &fakeCommander{}, Enricher: &fakeEnricher{}}

	d.Handle(context.Background(), msg("nothing interesting here"))

	if got := replier.sorted(); len(got) != 0 {
		t.Errorf("replies = %v, want none", got)
	}
}

func TestHandleFanOutIndependentFailures(t *testing.T) {
	replier := &fakeReplier{}
	enricher := &fakeEnricher{replies: map[string]string{
		"https://a.example": "summary A",
		"https://c.example": "summary C",
		// b.example missing: its enrichment fails silently
	}}
	d := &Dispatcher{Replier: replier, Stock: &fakeCommander{}, Enricher: enricher}

	d.Handle(context.Background(), msg("https://a.example https://b.example https://c.example"))

	want := []string{"guns|summary A", "guns|summary C"}
	if got := replier.sorted(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("replies = %v, want %v", replier.sorted(), want)
	}
	if len(enricher.calls) != 3 {
		t.Errorf("enricher calls = %d, want 3 (one per URL)", len(enricher.calls))
	}
}

func TestHandleDuplicateURLsEnrichedTwice(t *testing.T) {
	replier := &fakeReplier{}
	enricher := &fakeEnricher{replies: map[string]string{"http://x.example": "X"}}
	d := &Dispatcher{Replier: replier, Stock: &fakeCommander{}, Enricher: enricher}

	d.Handle(context.Background(), msg("http://x.example http://x.example"))

	if len(enricher.calls) != 2 {
		t.Errorf("enricher calls = %d, want 2 (no dedup)", len(enricher.calls))
	}
	if got := replier.sorted(); len(got) != 2 {
		t.Errorf("replies = %v, want two identical replies", got)
	}
}

func TestHandleCommandPrefixDetection(t *testing.T) {
	commander := &fakeCommander{reply: "Usage: !stock TICKER"}
	replier := &fakeReplier{}
	d := &Dispatcher{Replier: replier, Stock: commander, Enricher: &fakeEnricher{}}

	for _, text := range []string{"!stock", "!stock AAPL", "!stock AAPL MSFT"} {
		d.Handle(context.Background(), msg(text))
	}
	if commander.calls != 3 {
		t.Errorf("commander calls = %d, want 3", commander.calls)
	}
	for _, line := range replier.sorted() {
		if !strings.HasPrefix(line, "guns|") {
			t.Errorf("reply %q sent to wrong channel", line)
		}
	}
}
