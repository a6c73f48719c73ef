package notify

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/particle"
)

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	// No clients connected: broadcast must still succeed (fan-out is a no-op).
	err := hub.Broadcast(context.Background(), FrameEvent{Frame: 1})
	if err != nil {
		t.Errorf("broadcast failed: %v", err)
	}
}

func TestHubBroadcastCancelled(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fill the queue so the send blocks, then the cancelled context applies.
	for i := 0; i < 256; i++ {
		select {
		case hub.broadcast <- FrameEvent{}:
		default:
		}
	}
	_ = hub.Broadcast(ctx, FrameEvent{}) // must not hang
}

func TestHubBroadcastAfterClose(t *testing.T) {
	hub := NewHub()
	hub.Close()

	start := time.Now()
	err := hub.Broadcast(context.Background(), FrameEvent{})
	if err != ErrHubClosed {
		t.Errorf("err = %v, want ErrHubClosed", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("broadcast after close took %v, want immediate return", elapsed)
	}
}

func TestHubClientReceivesFrames(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Wait for registration to land in the hub goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	want := FrameEvent{Frame: 7, Time: 0.25, BondedPairs: 2}
	if err := hub.Broadcast(context.Background(), want); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got FrameEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Frame != 7 || got.BondedPairs != 2 {
		t.Errorf("got %+v, want frame=7 bonded=2", got)
	}
}

func TestSnapshot(t *testing.T) {
	clock := engine.NewFrameClock(time.Now(), time.Second/60)
	b := beaker.New(engine.Rect{Width: 100, Height: 100}, clock, rand.New(rand.NewSource(1)))
	b.AddParticles(particle.KindProton, 2)
	b.AddParticles(particle.KindWeakBase, 1)

	ev := Snapshot(b, 3, 50*time.Millisecond)

	if ev.Frame != 3 {
		t.Errorf("frame = %d, want 3", ev.Frame)
	}
	if ev.Time != 0.05 {
		t.Errorf("time = %v, want 0.05", ev.Time)
	}
	if len(ev.Particles) != 3 {
		t.Errorf("particles = %d, want 3", len(ev.Particles))
	}
	if ev.FreeProtons != 2 {
		t.Errorf("free protons = %d, want 2", ev.FreeProtons)
	}
	if ev.Solution.Width != 100 {
		t.Errorf("solution width = %v, want 100", ev.Solution.Width)
	}
}
