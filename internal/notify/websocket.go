package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/beakersim/internal/beaker"
)

// FrameEvent is one frame of the simulation as sent to browser clients.
type FrameEvent struct {
	Frame       int                   `json:"frame"`
	Time        float64               `json:"time_s"`
	Solution    SolutionView          `json:"solution"`
	Particles   []beaker.ParticleView `json:"particles"`
	BondedPairs int                   `json:"bonded_pairs"`
	FreeProtons int                   `json:"free_protons"`
}

type SolutionView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const writeTimeout = 10 * time.Second

// ErrHubClosed is returned by Broadcast once the hub has been closed.
var ErrHubClosed = errors.New("notify: hub closed")

// Hub broadcasts frame events to every connected websocket client. A single
// goroutine owns registration, unregistration and fan-out.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan FrameEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan FrameEvent, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page may be served from anywhere during classroom use.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	h.wg.Add(1)
	go h.run()
	return h
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues an event for every connected client. It fails when the hub
// is closed, the queue stays full for a second, or the context is cancelled.
func (h *Hub) Broadcast(ctx context.Context, event FrameEvent) error {
	// Once closed the fan-out goroutine is gone, so a buffered send would
	// succeed without ever being delivered.
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- event:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return fmt.Errorf("broadcast queue full")
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and registers
// it. The connection is read only to detect the client going away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- conn:
				case <-h.done:
				}
				return
			}
		}
	}()
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.send(data)
		}
	}
}

// send writes to each connection outside the lock; failed connections are
// dropped.
func (h *Hub) send(data []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
		}
	}

	if len(failed) > 0 {
		h.mu.Lock()
		for _, conn := range failed {
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		}
		h.mu.Unlock()
	}
}

// Close drops every client and stops the fan-out goroutine.
func (h *Hub) Close() error {
	close(h.done)

	h.mu.Lock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// Snapshot builds the frame event for the beaker's current state.
func Snapshot(b *beaker.Beaker, frame int, elapsed time.Duration) FrameEvent {
	sol := b.Solution()
	stats := b.Stats()
	return FrameEvent{
		Frame: frame,
		Time:  elapsed.Seconds(),
		Solution: SolutionView{
			X: sol.X, Y: sol.Y, Width: sol.Width, Height: sol.Height,
		},
		Particles:   b.Snapshot(),
		BondedPairs: stats.BondedPairs,
		FreeProtons: stats.FreeProtons,
	}
}
