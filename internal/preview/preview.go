// Package preview streams rendered frames to websocket clients and reports
// controller health. It is an observation surface only; it accepts no commands.
package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-scenestrip/internal/control"
	"github.com/coreman2200/funtimes-scenestrip/internal/effects"
)

const writeWait = 200 * time.Millisecond

// Frame is the JSON message sent for every refresh.
type Frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []int  `json:"rgb"`
}

// Hub is a led.Sink that fans frames out to connected clients.
type Hub struct {
	log zerolog.Logger

	mu      sync.RWMutex
	count   int
	frameID uint64
	clients map[*websocket.Conn]struct{}
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{log: log, clients: map[*websocket.Conn]struct{}{}}
}

func (h *Hub) Write(rgb []byte) error {
	h.mu.Lock()
	h.frameID++
	h.count = len(rgb) / 3
	f := Frame{T: time.Now().UnixNano(), FrameID: h.frameID, RGB: channels(rgb)}
	h.mu.Unlock()

	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.broadcast(b)
	return nil
}

// Close is a no-op: the hub outlives strip handles. Use Shutdown to drop
// clients.
func (h *Hub) Close() error { return nil }

// Shutdown disconnects every client.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends b to every client. A client whose write fails is closed and
// dropped so a stalled reader costs at most one writeWait.
func (h *Hub) broadcast(b []byte) {
	var dead []*websocket.Conn
	h.mu.RLock()
	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Debug().Err(err).Msg("write frame; dropping client")
			dead = append(dead, c)
		}
	}
	h.mu.RUnlock()
	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	for _, c := range dead {
		delete(h.clients, c)
		_ = c.Close()
	}
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleFrames upgrades the request and registers the client. Incoming
// messages are read and discarded until the client goes away.
func (h *Hub) HandleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("preview client connected")

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Source is what /health reports on. *effects.Controller satisfies it.
type Source interface {
	Snapshot() control.State
	Status() effects.Status
}

type Health struct {
	Status     string `json:"status"`
	Scene      string `json:"scene"`
	Brightness int    `json:"brightness"`
	Speed      int    `json:"speed"`
	FrameID    uint64 `json:"frame_id"`
	Count      int    `json:"count"`
}

func (h *Hub) health(src Source) Health {
	st := src.Snapshot()
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Health{
		Status:     src.Status().String(),
		Scene:      st.Scene.String(),
		Brightness: st.Brightness,
		Speed:      st.Speed,
		FrameID:    h.frameID,
		Count:      h.count,
	}
}

// Routes mounts /ws and /health.
func Routes(h *Hub, src Source) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Get("/ws", h.HandleFrames)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.health(src))
	})
	return r
}

// NewServer wraps Routes with the listen timeouts used by the binary.
func NewServer(addr string, h *Hub, src Source) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      Routes(h, src),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// channels widens the frame so it encodes as a JSON array, not base64.
func channels(rgb []byte) []int {
	out := make([]int, len(rgb))
	for i, v := range rgb {
		out[i] = int(v)
	}
	return out
}
