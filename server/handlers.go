package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handlers carries the state the HTTP endpoints report on. The bot itself is
// stateless, so this is just identity plus connection status.
type Handlers struct {
	started time.Time
	channel string
	status  StatusSource
}

// HandleHealthz responds to liveness probes. The bot is unhealthy when the
// chat connection is down.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.status != nil && !h.status.Connected() {
		http.Error(w, "chat disconnected", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// HandleStatus reports identity, connection state, and uptime as JSON.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"channel":        h.channel,
		"connected":      h.status != nil && h.status.Connected(),
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	})
}
