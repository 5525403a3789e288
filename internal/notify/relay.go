package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/esplink/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Buffered events per client before the client is considered stuck
	sendBuffer = 32
)

// Relay is a Renderer that streams toast lifecycle events as JSON over
// websocket connections, so a browser page can draw the same overlay the
// terminal does. Slow clients are dropped rather than allowed to block.
type Relay struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*relayClient]struct{}
	closed  bool
}

type relayClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewRelay creates a Relay accepting connections from any origin. The bridge
// is a local tool and browser pages are typically served from elsewhere.
func NewRelay() *Relay {
	return &Relay{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*relayClient]struct{}),
	}
}

// Render implements Renderer by broadcasting the event to every client.
func (r *Relay) Render(t Toast) {
	payload, err := json.Marshal(t)
	if err != nil {
		logging.Error("Failed to encode toast event", zap.Error(err))
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for c := range r.clients {
		select {
		case c.send <- payload:
		default:
			logging.Warn("Dropping slow toast relay client",
				zap.String("remote_addr", c.conn.RemoteAddr().String()),
			)
			r.removeLocked(c)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams events until the
// peer disconnects.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		logging.Warn("Toast relay upgrade failed", zap.Error(err))
		return
	}

	c := &relayClient{conn: conn, send: make(chan []byte, sendBuffer)}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_ = conn.Close()
		return
	}
	r.clients[c] = struct{}{}
	r.mu.Unlock()

	logging.Info("Toast relay client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	go r.writePump(c)
	r.readPump(c)
}

// readPump discards inbound messages and detects disconnects.
func (r *Relay) readPump(c *relayClient) {
	defer r.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("Toast relay read error", zap.Error(err))
			}
			return
		}
	}
}

func (r *Relay) writePump(c *relayClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Clients returns the number of connected clients.
func (r *Relay) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Close disconnects every client and refuses new ones.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for c := range r.clients {
		r.removeLocked(c)
	}
}

func (r *Relay) remove(c *relayClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(c)
}

func (r *Relay) removeLocked(c *relayClient) {
	if _, ok := r.clients[c]; !ok {
		return
	}
	delete(r.clients, c)
	c.once.Do(func() { close(c.send) })
	logging.Debug("Toast relay client removed", zap.String("remote_addr", c.conn.RemoteAddr().String()))
}
