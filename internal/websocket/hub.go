package websocket

import (
	"encoding/json"
	"sync"

	"github.com/interno-studio/interno-backend/pkg/logger"
)

// Client is one WebSocket connection subscribed to a browsing session's
// notification feed. A session may have several tabs open at once.
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

// Hub fans notification events out to every connection of a session.
type Hub struct {
	// SessionID -> connections (multi-tab support)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	done       chan struct{}

	mu sync.RWMutex
}

// BroadcastMessage is an event addressed to one session.
type BroadcastMessage struct {
	SessionID string
	Message   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BroadcastMessage, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Stop is called.
// Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for sessionID, clientList := range h.clients {
				for _, client := range clientList {
					close(client.Send)
				}
				delete(h.clients, sessionID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			logger.Debug("WebSocket client registered", map[string]interface{}{
				"session_id":  client.SessionID,
				"connections": len(h.clients[client.SessionID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.SessionID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = newList
				}

				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug("WebSocket client unregistered", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			if clientList, ok := h.clients[message.SessionID]; ok {
				for _, client := range clientList {
					select {
					case client.Send <- message.Message:
					default:
						// Send buffer full - drop the connection asynchronously
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"session_id": message.SessionID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastToSession sends an event to every connection of a session.
// Events are best-effort: when the broadcast queue is full the event is
// dropped rather than blocking the caller.
func (h *Hub) BroadcastToSession(sessionID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal message", err, nil)
		return err
	}

	select {
	case h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message:   data,
	}:
		return nil
	default:
		logger.Warn("Broadcast channel full, message dropped", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil
	}
}

// Register registers a client
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister unregisters a client
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Stop shuts the hub down: Run drains, closes every client's send channel
// and returns. Events broadcast after Stop are dropped.
func (h *Hub) Stop() {
	close(h.done)
}

// IsSessionConnected reports whether a session has any open connection.
func (h *Hub) IsSessionConnected(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}
