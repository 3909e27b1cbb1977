package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// broadcastBuffer is the number of pending state messages kept for
	// slow clients before new ones are dropped.
	broadcastBuffer = 64

	writeTimeout = 5 * time.Second
)

// Hub fans lifecycle snapshots out to WebSocket clients. One goroutine
// owns the client set and performs every write. A new client first
// receives the latest message the hub has seen, then every later one.
type Hub struct {
	last       []byte
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	count      atomic.Int32
}

// NewHub creates a Hub whose clients start from initial until the first
// broadcast. Call Run to start it.
func NewHub(logger *slog.Logger, initial []byte) *Hub {
	return &Hub{
		last:       initial,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.count.Store(0)
			return

		case conn := <-h.register:
			if err := h.send(conn, h.last); err != nil {
				h.logger.Warn("failed to send websocket message", "error", err)
				_ = conn.Close()
				continue
			}
			h.clients[conn] = true
			h.count.Store(int32(len(h.clients)))
			h.logger.Debug("websocket client connected", "clients", len(h.clients))

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
				h.count.Store(int32(len(h.clients)))
				h.logger.Debug("websocket client disconnected", "clients", len(h.clients))
			}

		case msg := <-h.broadcast:
			h.last = msg
			for conn := range h.clients {
				if err := h.send(conn, msg); err != nil {
					h.logger.Warn("failed to send websocket message", "error", err)
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.count.Store(int32(len(h.clients)))
		}
	}
}

// Clients returns the number of registered clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Broadcast queues msg for every client. It never blocks; when the buffer
// is full the message is dropped and clients catch up on the next one.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping message")
	}
}

func (h *Hub) send(conn *websocket.Conn, msg []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// ServeWS upgrades the request and hands the connection to the hub, which
// sends it the current state first. ctx is the hub's lifetime.
func (h *Hub) ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	select {
	case h.register <- conn:
	case <-ctx.Done():
		_ = conn.Close()
		return
	}

	// Clients only listen; reading detects when they go away.
	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-ctx.Done():
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
