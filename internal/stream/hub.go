package stream

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bluetrax/bluetrax/internal/devclass"
	"github.com/bluetrax/bluetrax/internal/logging"
	"github.com/bluetrax/bluetrax/internal/record"
)

const (
	// Time allowed to write a record to a client before it is dropped
	writeWait = 10 * time.Second

	// Path the feed is served on
	feedPath = "/events"
)

// Event is the JSON shape of one record on the feed. Fields a record kind
// does not carry are omitted.
type Event struct {
	Type     string `json:"type"`
	Time     string `json:"time"`
	Addr     string `json:"bdaddr,omitempty"`
	Services string `json:"services,omitempty"`
	Major    string `json:"major,omitempty"`
	Minor    string `json:"minor,omitempty"`
	RSSI     *int8  `json:"rssi,omitempty"`
}

// Hub fans live records out to websocket clients. It satisfies the
// scanner's sink contract but is strictly best-effort: a client that
// cannot keep up is disconnected, and client trouble never fails the scan.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// the feed is read-only telemetry on a trusted interface
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades a request to a websocket and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	logging.Info("feed client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	// Reader goroutine: the feed is one-way, but reading is what notices
	// a closed connection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				logging.Info("feed client disconnected",
					zap.String("remote_addr", conn.RemoteAddr().String()),
				)
				return
			}
		}
	}()
}

// Write broadcasts one record to every connected client. Always nil: feed
// delivery is best-effort and must never abort the scan.
func (h *Hub) Write(rec record.Record) error {
	ev := toEvent(rec)

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			logging.Warn("dropping slow feed client",
				zap.String("remote_addr", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
	return nil
}

// Flush is a no-op; records are pushed as they arrive.
func (h *Hub) Flush() error { return nil }

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = conn.Close()
	delete(h.conns, conn)
}

func toEvent(rec record.Record) Event {
	switch r := rec.(type) {
	case record.CycleComplete:
		return Event{Type: "complete", Time: renderTime(r.Time)}
	case record.Discovery:
		return deviceEvent(r.Time, r.Addr, r.Class, nil)
	case record.DiscoveryWithSignal:
		rssi := r.RSSI
		return deviceEvent(r.Time, r.Addr, r.Class, &rssi)
	}
	return Event{Type: "unknown"}
}

func deviceEvent(ts record.Timestamp, addr record.Addr, class [3]byte, rssi *int8) Event {
	major, minor := devclass.Classify(devclass.Major(class), devclass.Minor(class))
	return Event{
		Type:     "inquiry",
		Time:     renderTime(ts),
		Addr:     addr.String(),
		Services: strconv.Itoa(int(devclass.Service(class))),
		Major:    major,
		Minor:    minor,
		RSSI:     rssi,
	}
}

func renderTime(ts record.Timestamp) string {
	return ts.Time().Format(time.RFC3339Nano)
}

// NewServer builds an HTTP server exposing the feed on /events.
func NewServer(addr string, hub *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(feedPath, hub)
	return &http.Server{Addr: addr, Handler: mux}
}
