package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// Hub fans realtime events out to connected streams.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan gateway.Event
	next   int
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = util.DiscardLogger()
	}
	return &Hub{subs: make(map[int]chan gateway.Event), logger: logger}
}

// Subscribe registers a listener until ctx is done, then closes its channel.
func (h *Hub) Subscribe(ctx context.Context) <-chan gateway.Event {
	ch := make(chan gateway.Event, 32)
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
		close(ch)
	}()
	return ch
}

// Publish never blocks; a full subscriber misses the event.
func (h *Hub) Publish(ev gateway.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("dropping realtime event for slow stream", slog.String("entity", string(ev.EntityType)))
		}
	}
}

// Subscribers reports the number of open streams.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (s *Server) broadcastMember(m models.TeamMember) {
	raw, err := json.Marshal(gateway.TeamMemberToRow(m))
	if err != nil {
		util.LogError(s.logger, "encode team member event", err)
		return
	}
	s.hub.Publish(gateway.Event{EntityType: models.EntityTeamMember, Record: raw})
}

// handleRealtime streams hub events as server-sent events named after the
// entity type, each carrying the JSON event as data.
func (s *Server) handleRealtime(c *gin.Context) {
	ctx := c.Request.Context()
	events := s.hub.Subscribe(ctx)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	// Send the headers now; clients block until they see them.
	_, _ = io.WriteString(c.Writer, ": connected\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				util.LogError(s.logger, "encode realtime event", err)
				return true
			}
			c.SSEvent(string(ev.EntityType), string(data))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
