package sim

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/particle"
)

func newTestRunner(seed int64) (*Runner, *beaker.Beaker) {
	clock := engine.NewFrameClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Second/30)
	b := beaker.New(engine.Rect{Width: 200, Height: 200}, clock, rand.New(rand.NewSource(seed)))
	return New(b, clock), b
}

func TestRunnerRun(t *testing.T) {
	r, b := newTestRunner(1)
	b.AddParticles(particle.KindProton, 5)
	b.AddParticles(particle.KindStrongBase, 2)

	result, err := r.Run(context.Background(), Config{FPS: 30, Duration: 2 * time.Second})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 60 {
		t.Errorf("expected 60 frames, got %d", len(result.Frames))
	}

	last := result.Frames[len(result.Frames)-1]
	if last.Protons != 5 || last.StrongBases != 2 {
		t.Errorf("population drifted: %+v", last)
	}
	if last.FreeProtons+last.BondedPairs != last.Protons {
		t.Errorf("free + bonded != protons: %+v", last)
	}
	if last.Elapsed != 2*time.Second {
		t.Errorf("expected 2s elapsed, got %v", last.Elapsed)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r, _ := newTestRunner(1)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero fps", Config{FPS: 0, Duration: time.Second}},
		{"negative fps", Config{FPS: -30, Duration: time.Second}},
		{"zero duration", Config{FPS: 30, Duration: 0}},
		{"negative duration", Config{FPS: 30, Duration: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCancellation(t *testing.T) {
	r, b := newTestRunner(2)
	b.AddParticles(particle.KindProton, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{FPS: 30, Duration: time.Hour})
	if err == nil {
		t.Fatal("expected context error")
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
}

type countingMetric struct{ frames int }

func (c *countingMetric) Name() string    { return "frames_seen" }
func (c *countingMetric) Observe(f Frame) { c.frames++ }
func (c *countingMetric) Value() float64  { return float64(c.frames) }
func (c *countingMetric) Reset()          { c.frames = 0 }

func TestRunnerMetrics(t *testing.T) {
	r, b := newTestRunner(3)
	b.AddParticles(particle.KindProton, 2)

	m := &countingMetric{}
	r.AddMetric(m)

	result, err := r.Run(context.Background(), Config{FPS: 30, Duration: time.Second})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got, ok := result.Metrics["frames_seen"]; !ok || got != 30 {
		t.Errorf("frames_seen = %v (present=%v), want 30", got, ok)
	}
}

type frameRecorder struct{ calls int }

func (f *frameRecorder) OnFrame(b *beaker.Beaker, fr Frame) { f.calls++ }

func TestRunnerObservers(t *testing.T) {
	r, b := newTestRunner(4)
	b.AddParticles(particle.KindWeakBase, 1)

	obs := &frameRecorder{}
	r.AddObserver(obs)

	if _, err := r.Run(context.Background(), Config{FPS: 10, Duration: time.Second}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if obs.calls != 10 {
		t.Errorf("observer called %d times, want 10", obs.calls)
	}
}
