// Package wsbroadcast fans out tournament lifecycle events (a round's
// pairing, a recomputed standings table) to every connected browser over
// one gorilla/websocket hub per server process.
package wsbroadcast

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// Client is a single websocket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan domain.WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

// NewHub constructs an unstarted Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan domain.WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Register enqueues a new client for the hub's run loop to pick up.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// WritePump drains the client's Send channel onto its socket.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("wsbroadcast: write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump discards inbound client frames; its only job is to notice the
// connection closing so the hub can unregister the client.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("wsbroadcast: unexpected close: %v", err)
			}
			return
		}
	}
}

// Run is the hub's single-goroutine event loop; it owns the clients map.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("wsbroadcast: marshal error: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- data:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
			log.Printf("wsbroadcast: broadcast type=%s to %d clients", message.Type, len(h.clients))
		}
	}
}
