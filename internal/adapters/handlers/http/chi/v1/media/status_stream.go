package media

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/metrics"
)

// heartbeatInterval spaces the comment-only keep-alives that stop proxies
// from reaping an idle stream
const heartbeatInterval = 30 * time.Second

// StatusStreamV1 is a long-lived SSE connection pushing status-change
// events. Events published before a viewer connects are not replayed.
func (h *HandlerV1) StatusStreamV1(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.bus.Subscribe()
	defer cancel()
	metrics.EventSubscribers.Inc()
	defer metrics.EventSubscribers.Dec()

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("error encoding status event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: status-change\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
