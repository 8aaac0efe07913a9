package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/campulist/campulist/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// Event types pushed to subscribers
const (
	EventMessage = "message"
	EventError   = "error"
)

const broadcastBuffer = 256

// Event is the payload of one text frame written to chat sockets
type Event struct {
	Type     string              `json:"type"`
	ThreadID string              `json:"thread_id"`
	Message  *models.ChatMessage `json:"message,omitempty"`
	Error    *dto.ErrorPayload   `json:"error,omitempty"`
}

// Hub maintains the set of active clients per chat thread and fans messages
// out to them
type Hub struct {
	// Registered clients organized by thread ID
	clients map[string]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Guards clients for readers outside the Run goroutine
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Run handles registrations and broadcasts until ctx is cancelled. All
// connected clients are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// PublishMessage queues msg for every socket subscribed to its thread. It
// never blocks; when the queue is full the event is dropped.
func (h *Hub) PublishMessage(msg *models.ChatMessage) {
	event := &Event{Type: EventMessage, ThreadID: msg.ThreadID, Message: msg}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("thread_id", msg.ThreadID).Str("message_id", msg.ID).Msg("broadcast queue full, dropping message")
	}
}

// Register subscribes client to its thread. It returns false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client; it is a no-op after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientsCount returns the number of connected clients for a thread
func (h *Hub) ClientsCount(threadID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[threadID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.threadID]; !ok {
		h.clients[client.threadID] = make(map[*Client]bool)
	}
	h.clients[client.threadID][client] = true

	h.logger.Info().
		Str("thread_id", client.threadID).
		Str("user_id", client.session.UserID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.threadID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	client.closeSend()
	if len(clients) == 0 {
		delete(h.clients, client.threadID)
	}

	h.logger.Info().
		Str("thread_id", client.threadID).
		Str("user_id", client.session.UserID).
		Msg("Client unregistered")
}

func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("thread_id", event.ThreadID).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[event.ThreadID]
	for client := range clients {
		if !client.trySend(data) {
			// Slow consumer; its write pump exits once send is closed
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("thread_id", event.ThreadID).
		Int("client_count", len(clients)).
		Msg("Event broadcasted to thread")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
