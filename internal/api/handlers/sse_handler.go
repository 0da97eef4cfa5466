package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campventure/backend/internal/domain/entities"
	"github.com/campventure/backend/internal/domain/providers"
)

// SSEHandler streams real-time camp updates over Server-Sent Events
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.CampEvent]bool // channel -> clients
	mu       sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.CampEvent]bool),
	}
}

// StreamCampUpdates handles SSE connections for camp-specific updates.
// GET /api/stream/camps/{id}
func (h *SSEHandler) StreamCampUpdates(w http.ResponseWriter, r *http.Request) {
	campID := r.PathValue("id")
	if campID == "" {
		respondWithError(w, http.StatusBadRequest, "camp ID is required")
		return
	}

	h.stream(w, r, providers.GetCampChannel(campID), map[string]interface{}{
		"camp_id":   campID,
		"timestamp": time.Now(),
	})
}

// StreamStateUpdates handles SSE connections for all camps in one state.
// GET /api/stream/states/{state}
func (h *SSEHandler) StreamStateUpdates(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")
	if state == "" {
		respondWithError(w, http.StatusBadRequest, "state is required")
		return
	}

	h.stream(w, r, providers.GetStateChannel(state), map[string]interface{}{
		"state":     state,
		"timestamp": time.Now(),
	})
}

// StreamAllUpdates handles SSE connections for the global update feed.
// GET /api/stream/camps
func (h *SSEHandler) StreamAllUpdates(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, providers.EventChannelCampUpdates, map[string]interface{}{
		"timestamp": time.Now(),
	})
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, hello map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan *entities.CampEvent, 10)
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to subscribe to channel")
		return
	}

	h.sendEvent(w, "connected", hello)
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", channel).Msg("client disconnected from stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel,
// dropping events when the client buffer is full.
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.CampEvent, clientChan chan<- *entities.CampEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
			}
		}
	}
}

func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.CampEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.CampEvent]bool)
	}
	h.clients[channel][clientChan] = true
	log.Debug().Str("channel", channel).Int("total", len(h.clients[channel])).Msg("client registered")
}

func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.CampEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// ClientCount returns the number of connected clients
func (h *SSEHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
