package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/latticeforge/discovery/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscriber is one connected websocket client. runFilter is the run ID
// it asked to watch via ?run=<id>; empty means it wants every run's
// discoveries. Broadcast only writes to a subscriber when a message's
// run ID matches its filter (or its filter is empty), so a client
// watching one long exploration isn't flooded by every other run on the
// daemon.
type subscriber struct {
	conn      *websocket.Conn
	runFilter string
}

// runMessage pairs a broadcast payload with the run ID that produced it.
type runMessage struct {
	runID   string
	payload []byte
}

// Hub maintains the set of active websocket clients and broadcasts
// newly-scored discoveries to the ones watching the run each came from.
type Hub struct {
	clients   map[*websocket.Conn]*subscriber
	broadcast chan runMessage
	mutex     sync.Mutex
	log       *telemetry.Logger
}

// NewHub returns an idle hub; callers must run Hub.Run in its own
// goroutine to start delivering broadcasts.
func NewHub(log *telemetry.Logger) *Hub {
	if log == nil {
		log = telemetry.NewNop()
	}
	return &Hub{
		broadcast: make(chan runMessage, 256),
		clients:   make(map[*websocket.Conn]*subscriber),
		log:       log.Component("ws_hub"),
	}
}

// Run drains the broadcast channel and fans each message out to every
// subscriber whose run filter matches, dropping and closing any client
// that can't keep up within its write deadline.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mutex.Lock()
		for conn, sub := range h.clients {
			if sub.runFilter != "" && sub.runFilter != msg.runID {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
				h.log.Warn("websocket write failed, dropping client", errField(err))
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.mutex.Unlock()
	}
}

// Subscribe upgrades the request to a websocket connection and registers
// it to receive future discovery broadcasts, optionally scoped to a
// single run via the ?run=<id> query parameter.
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", errField(err))
		return
	}
	runFilter := c.Query("run")

	h.mutex.Lock()
	h.clients[conn] = &subscriber{conn: conn, runFilter: runFilter}
	n := len(h.clients)
	h.mutex.Unlock()
	h.log.Info("websocket client connected", intField("total_clients", n), strField("run_filter", runFilter))

	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			n := len(h.clients)
			h.mutex.Unlock()
			conn.Close()
			h.log.Info("websocket client disconnected", intField("total_clients", n))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.log.Warn("websocket closed unexpectedly", errField(err))
				}
				break
			}
		}
	}()
}

// Broadcast queues data to be sent to every client subscribed to runID
// (or to every client, if a subscriber registered with no filter).
func (h *Hub) Broadcast(runID string, data []byte) {
	h.broadcast <- runMessage{runID: runID, payload: data}
}
