package httpadapter

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"nonogrid/internal/domain"
	"nonogrid/internal/metrics"
)

const (
	clientQueue  = 16
	pingInterval = 30 * time.Second
)

// Hub fans accepted submissions out to websocket subscribers. A
// subscriber whose queue is full misses that event; the feed is a
// ticker, not a ledger.
type Hub struct {
	Log *logrus.Logger

	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*liveClient]struct{}
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		Log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*liveClient]struct{}),
	}
}

// Publish implements ports.Publisher.
func (h *Hub) Publish(ev domain.LiveEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.Log != nil {
			h.Log.WithError(err).Warn("live feed upgrade failed")
		}
		return
	}
	c := &liveClient{conn: conn, send: make(chan []byte, clientQueue)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	metrics.LiveClients.Inc()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) writePump(c *liveClient) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the client until it hangs up. Inbound messages carry
// nothing; the feed is one-way.
func (h *Hub) readPump(c *liveClient) {
	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		close(c.send)
		_ = c.conn.Close()
		metrics.LiveClients.Dec()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
