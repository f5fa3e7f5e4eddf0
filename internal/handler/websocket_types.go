// internal/handler/websocket_types.go
package handler

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one connected WebSocket consumer. Subscriptions are written by
// the client's read pump and read by the event forwarder, and the send
// channel is closed on unregister while senders may still hold a stale
// reference, so access goes through the accessor methods.
type Client struct {
	ID          string          `json:"id"`
	Connection  *websocket.Conn `json:"-"`
	Send        chan []byte     `json:"-"`
	UserAgent   string          `json:"user_agent"`
	RemoteAddr  string          `json:"remote_addr"`
	ConnectedAt time.Time       `json:"connected_at"`

	mu     sync.RWMutex
	closed bool
	topics map[string]bool
}

// TrySend queues a message without blocking. It returns false when the
// client is gone or its buffer is full. The mutex excludes shutdown, so
// the channel cannot close between the check and the send.
func (c *Client) TrySend(message []byte) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Subscribe narrows the client's feed to the given topic.
func (c *Client) Subscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.topics == nil {
		c.topics = make(map[string]bool)
	}
	c.topics[topic] = true
}

// Unsubscribe drops one topic from the client's feed.
func (c *Client) Unsubscribe(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.topics, topic)
}

// WantsTopic reports whether the client should receive the topic. A client
// that never subscribed receives everything.
func (c *Client) WantsTopic(topic string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.topics) == 0 || c.topics[topic]
}

// WebSocketMessage is the frame format on /ws/events.
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// ConnectionManager tracks the connected clients.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewConnectionManager creates an empty connection manager.
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*Client),
	}
}

// Register adds a client.
func (cm *ConnectionManager) Register(client *Client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[client.ID] = client
}

// Unregister removes a client and closes its send channel. Safe to call
// more than once for the same client.
func (cm *ConnectionManager) Unregister(client *Client) {
	cm.mu.Lock()
	delete(cm.clients, client.ID)
	cm.mu.Unlock()

	client.shutdown()
}

// GetClients returns a snapshot of the connected clients.
func (cm *ConnectionManager) GetClients() []*Client {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	return clients
}

// GetStats returns connection statistics for diagnostics.
func (cm *ConnectionManager) GetStats() *ConnectionStats {
	clients := cm.GetClients()
	return &ConnectionStats{
		TotalConnections: len(clients),
		Clients:          clients,
	}
}

// ConnectionStats summarizes the active connections.
type ConnectionStats struct {
	TotalConnections int       `json:"total_connections"`
	Clients          []*Client `json:"clients"`
}
