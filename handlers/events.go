package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"linebell/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WSMessage is the envelope sent to event feed clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type eventClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans dispatch events out to connected ops clients.
type Hub struct {
	clients    map[*eventClient]bool
	broadcast  chan []byte
	register   chan *eventClient
	unregister chan *eventClient
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*eventClient]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *eventClient, 16),
		unregister: make(chan *eventClient, 16),
	}
}

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
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop the event rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastDispatch publishes a fired reminder to all connected clients.
func (h *Hub) BroadcastDispatch(event models.DispatchEvent) {
	data, err := json.Marshal(WSMessage{Type: models.WSTypeDispatch, Payload: event})
	if err != nil {
		log.Printf("Failed to marshal dispatch event: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("Event feed backlogged, dropping dispatch event for reminder %d", event.ReminderID)
	}
}

// HandleWebSocket upgrades the connection and streams dispatch events.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &eventClient{hub: h, conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; it exists to notice closed connections.
func (c *eventClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *eventClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
