package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"golang.org/x/exp/slog"
)

const (
	writeTimeout    = 10 * time.Second
	maxMessageSize  = 512
	sendBufferSize  = 16
	readBufferSize  = 1024
	writeBufferSize = 1024
)

// Frame is one push message to a renderer
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Frame types
const (
	FrameLeaderboard = "leaderboard"
	FrameCountdown   = "countdown"
)

// Hub tracks WebSocket connections from browser renderers and broadcasts
// leaderboard and countdown frames to all of them. Renderers holding a
// connection never need to poll the HTTP surface.
type Hub struct {
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	connections map[*connection]bool
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// CORS policy is enforced by the HTTP middleware; the
				// websocket endpoint accepts any origin that reached it
				return true
			},
		},
		connections: make(map[*connection]bool),
	}
}

// Serve upgrades an HTTP request and registers the connection
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &connection{
		id:   uuid.New().String(),
		conn: ws,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.connections[c] = true
	total := len(h.connections)
	h.mu.Unlock()
	slog.Info("renderer connected", "connectionId", c.id, "total", total)

	go c.writePump()
	go h.readPump(c)
}

// BroadcastLeaderboard pushes a snapshot frame to every renderer
func (h *Hub) BroadcastLeaderboard(snapshot models.LeaderboardSnapshot) {
	h.broadcast(FrameLeaderboard, snapshot)
}

// BroadcastCountdown pushes a countdown frame to every renderer
func (h *Hub) BroadcastCountdown(view models.CountdownView) {
	h.broadcast(FrameCountdown, view)
}

// ConnectionCount returns the number of connected renderers
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) broadcast(frameType string, payload interface{}) {
	data, err := json.Marshal(Frame{Type: frameType, Payload: payload})
	if err != nil {
		slog.Error("failed to marshal frame", "type", frameType, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		select {
		case c.send <- data:
		default:
			// Slow consumer; drop the frame rather than block the tick
			slog.Warn("dropping frame for slow connection", "connectionId", c.id)
		}
	}
}

func (h *Hub) remove(c *connection) {
	h.mu.Lock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// readPump consumes client messages (renderers send nothing meaningful) and
// tears the connection down on error
func (h *Hub) readPump(c *connection) {
	defer h.remove(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "connectionId", c.id, "error", err)
			}
			return
		}
	}
}

func (c *connection) writePump() {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
