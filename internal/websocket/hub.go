// Package refreshws pushes refresh-bus signals to open browser pages, so a
// mutation made in one tab re-fetches the data every other tab renders.
package refreshws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/albqueque12/FitIA/internal/refresh"
)

type Hub struct {
	bus        *refresh.Bus
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
}

type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type event struct {
	Type    string `json:"type"`
	Version uint64 `json:"version"`
}

func NewHub(bus *refresh.Bus) *Hub {
	return &Hub{
		bus:        bus,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client set. It drains the bus subscription and fans each
// signal out; a client that cannot keep up is dropped rather than blocking
// the others.
func (h *Hub) Run() {
	sub := h.bus.Subscribe()
	defer sub.Close()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case version := <-sub.C:
			payload, err := json.Marshal(event{Type: "refresh", Version: version})
			if err != nil {
				log.Printf("refresh hub encode event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// HandleConnection is the fiber websocket handler. It blocks for the life
// of the connection.
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 8),
	}
	h.register <- client

	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	// The browser never sends application messages; reading only detects
	// the close.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("refresh hub write to %s: %v", c.id, err)
			return
		}
	}
}
