package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Message types pushed to dashboard clients.
const (
	TypeConnection = "connection"
	TypeRefresh    = "refresh"
)

// RefreshPayload tells connected dashboards which derived views went stale.
// Source names the trigger (startup load, upload); Components lists the
// replaced dataset kinds.
type RefreshPayload struct {
	Source     string   `json:"source"`
	Components []string `json:"components"`
}

// Envelope is the wire format for every hub message.
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// Hub maintains the set of connected dashboard clients and fans broadcast
// messages out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	logger  *slog.Logger
	quit    chan struct{}
	running bool
}

// NewHub creates a hub. Call Start before serving connections.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		quit:       make(chan struct{}),
	}
}

// Start launches the hub loop. Safe to call more than once.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

// Stop shuts the hub loop down and disconnects all clients.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("client registered",
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("total_clients", count))

			if msg, err := marshalEnvelope(TypeConnection, map[string]string{
				"status":    "connected",
				"client_id": client.id,
			}); err == nil {
				select {
				case client.send <- msg:
				default:
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			h.logger.Info("client unregistered",
				slog.String("client_id", client.id),
				slog.Duration("connection_duration", time.Since(client.connectedAt)),
				slog.Int("total_clients", count))

		case message := <-h.broadcast:
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the connection rather than block
					// the hub loop.
					h.logger.Warn("client send buffer full, disconnecting",
						slog.String("client_id", client.id))
					h.mu.Lock()
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastRefresh notifies all clients that the named dataset components
// were replaced and must be refetched.
func (h *Hub) BroadcastRefresh(source string, components []string) {
	msg, err := marshalEnvelope(TypeRefresh, RefreshPayload{
		Source:     source,
		Components: components,
	})
	if err != nil {
		h.logger.Error("marshal refresh message", slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- msg:
	case <-h.quit:
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func marshalEnvelope(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(Envelope{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
