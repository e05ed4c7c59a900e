package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

var eventTopics = []string{sse.TopicDashboard, sse.TopicEmployees, sse.TopicAttendance, sse.TopicTheme}

type EventHandler interface {
	// Stream serves snapshots of one topic as server-sent events
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewEventHandler(hub *sse.Hub) EventHandler {
	return &eventHandlerImpl{hub: hub, keepalive: 30 * time.Second}
}

// Stream handles GET /events?topic=
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if !validator.IsInSlice(topic, eventTopics) {
		response.BadRequest(w, "Unknown topic", map[string]string{"topic": "must be one of dashboard, employees, attendance, theme"})
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topic)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"topic\":%q}\n\n", topic)
	flusher.Flush()
	slog.Debug("Event stream opened", "topic", topic, "subscribers", h.hub.SubscriberCount(topic))

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Failed to encode event", "topic", topic, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
