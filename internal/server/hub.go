package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum control message size allowed from a peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Control is a command sent by a viewer: start, stop, step, reset or
// set_period (value in milliseconds).
type Control struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *log.Logger
}

// readPump routes control messages from the connection to the hub. A broken
// connection is detected by a write failure in writePump.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("read", "err", err)
			}
			break
		}
		var ctl Control
		if err := json.Unmarshal(message, &ctl); err != nil {
			c.logger.Warn("bad control message", "err", err)
			continue
		}
		select {
		case c.hub.Controls <- ctl:
		default:
			c.logger.Warn("control channel full, dropping", "type", ctl.Type)
		}
	}
}

// writePump is the only writer to the connection.
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.logger.Error("write, closing connection", "err", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	Controls   chan Control
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Controls:   make(chan Control, 16),
	}
}

// Run starts the hub's message-handling loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop the frame rather than stall the hub.
				}
			}
		}
	}
}

// ServeWS upgrades an HTTP connection and attaches it to the hub.
func ServeWS(hub *Hub, logger *log.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("upgrade", "err", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 64), logger: logger}
	client.hub.Register <- client
	go client.writePump()
	go client.readPump()
}
