// Package stream broadcasts fill steps to websocket clients.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/floodfill"
)

// sendBuffer is the number of messages queued per client. A client that
// falls this far behind is dropped.
const sendBuffer = 1024

const writeWait = 5 * time.Second

// StepMessage is sent for every painted cell.
type StepMessage struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// DoneMessage is sent when a fill ends.
type DoneMessage struct {
	Done     bool   `json:"done"`
	ID       string `json:"id"`
	Painted  int    `json:"painted"`
	Canceled bool   `json:"canceled"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is an http.Handler that upgrades requests to websocket connections
// and fans messages out to every connected client.
//
// Hub is safe for concurrent use.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub with no clients.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Viewers are served from anywhere, typically a local file.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		floodfill.Logger().Warn("stream upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	floodfill.Logger().Debug("stream client connected", "remote", conn.RemoteAddr().String())

	go h.writeLoop(c)
	go h.readLoop(c)
}

// writeLoop sends queued messages until the queue is closed.
func (h *Hub) writeLoop(c *client) {
	defer func() { _ = c.conn.Close() }()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c, "write failed")
			// Drain so remove's close does not race with pending sends.
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// readLoop discards client input and detects disconnects.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			h.remove(c, "disconnected")
			return
		}
	}
}

// remove unregisters c and closes its queue. It is a no-op if c is gone.
func (h *Hub) remove(c *client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		floodfill.Logger().Warn("stream client dropped", "remote", c.conn.RemoteAddr().String(), "reason", reason)
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues v, encoded as JSON, for every client. Clients whose queue
// is full are dropped rather than slowing the fill down.
func (h *Hub) Broadcast(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.remove(c, "too slow")
	}
	return nil
}

// Observe broadcasts a step. It has the signature of an engine observer.
func (h *Hub) Observe(s floodfill.Step) {
	_ = h.Broadcast(StepMessage{X: s.X, Y: s.Y, Color: s.New.String()})
}

// Finish broadcasts the end of the fill described by req and res.
func (h *Hub) Finish(req floodfill.Request, res floodfill.Result) {
	_ = h.Broadcast(DoneMessage{Done: true, ID: req.ID, Painted: res.Painted, Canceled: res.Canceled})
}

// Close disconnects every client after its queued messages are sent.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}
