package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/roulette/internal/game"
	"github.com/Faultbox/roulette/internal/logger"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	pongWait     = 2 * pingInterval
	sendBuffer   = 16
)

// Message is the envelope of everything sent to websocket clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// client is one websocket connection.
type client struct {
	conn *websocket.Conn
	send chan []byte
	addr string
}

// Hub fans results out to connected websocket clients. A client that cannot
// keep up loses messages instead of stalling the game loop.
type Hub struct {
	upgrader websocket.Upgrader
	history  *History
	log      *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub. When history is set, new clients first receive the
// stored results. checkOrigin may be nil to accept any origin.
func NewHub(history *History, checkOrigin func(*http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		history: history,
		log:     logger.Named("hub"),
		clients: make(map[*client]struct{}),
	}
}

// Publish broadcasts ev to every client.
func (h *Hub) Publish(ev game.Event) {
	h.broadcast(Message{Type: "result", Data: ev})
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.log.Warn("websocket upgrade failed", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		addr: r.RemoteAddr,
	}

	if h.history != nil {
		if data, err := json.Marshal(Message{Type: "history", Data: h.history.Recent(0)}); err == nil {
			c.send <- data
		}
	}

	if !h.register(c) {
		conn.Close()
		return
	}

	go c.writePump(h.log)
	go h.readPump(c)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.log.Debug("client connected", zap.String("remote", c.addr), zap.Int("clients", len(h.clients)))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Debug("client disconnected", zap.String("remote", c.addr), zap.Int("clients", len(h.clients)))
}

func (h *Hub) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.log.Error("marshaling message", zap.String("type", m.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("client send buffer full, dropping message",
				zap.String("remote", c.addr),
				zap.String("type", m.Type),
			)
		}
	}
}

// readPump discards client input and unregisters the client once the
// connection fails.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", zap.String("remote", c.addr), zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump(log *zap.Logger) {
	ticker := time.NewTicker(pingInterval)
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
				log.Debug("websocket write error", zap.String("remote", c.addr), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("websocket ping error", zap.String("remote", c.addr), zap.Error(err))
				return
			}
		}
	}
}
