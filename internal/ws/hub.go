package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/olumide/foodloan-backend/pkg/logger"
)

// TrackingEvent is the payload pushed when an order's trail grows.
type TrackingEvent struct {
	OrderID   uint      `json:"order_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client is one live connection for a user. A user may hold several at
// once (multiple devices).
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans tracking events out to the owning user's connections.
type Hub struct {
	clients    map[uint][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

// Run owns the client registry. Call it once from main in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": h.sessionCount(client.UserID),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// PushToUser delivers a tracking event to every live session the user
// holds. Users without a session just miss the push; the trail is
// always readable over HTTP.
func (h *Hub) PushToUser(userID uint, event TrackingEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode tracking event", err, map[string]interface{}{
			"order_id": event.OrderID,
		})
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer, drop rather than block the push path
			logger.Warn("Dropping tracking event for slow WebSocket client", map[string]interface{}{
				"user_id":  userID,
				"order_id": event.OrderID,
			})
		}
	}
}

func (h *Hub) sessionCount(userID uint) int {
	return len(h.clients[userID])
}
