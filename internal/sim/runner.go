package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/beakersim/internal/beaker"
	"github.com/san-kum/beakersim/internal/engine"
)

// Frame is one per-frame sample of the population.
type Frame struct {
	Index       int
	Elapsed     time.Duration
	Protons     int
	FreeProtons int
	BondedPairs int
	StrongBases int
	WeakBases   int
}

// Metric accumulates a summary value over a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer is called after every frame with full access to the beaker.
type Observer interface {
	OnFrame(b *beaker.Beaker, f Frame)
}

type Config struct {
	FPS      int
	Duration time.Duration
}

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
}

// Runner steps a beaker at a fixed frame rate against a frame clock, so a
// headless run is deterministic and does not depend on real elapsed time.
type Runner struct {
	beaker    *beaker.Beaker
	clock     *engine.FrameClock
	metrics   []Metric
	observers []Observer
}

func New(b *beaker.Beaker, clock *engine.FrameClock) *Runner {
	return &Runner{beaker: b, clock: clock}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the beaker one frame at a time until the configured duration
// elapses or ctx is cancelled. On cancellation the partial result is returned
// along with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration.Seconds() * float64(cfg.FPS))
	interval := time.Second / time.Duration(cfg.FPS)

	result := &Result{
		Frames:  make([]Frame, 0, frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		r.beaker.Step()
		r.clock.Tick()

		stats := r.beaker.Stats()
		f := Frame{
			Index:       i,
			Elapsed:     time.Duration(i+1) * interval,
			Protons:     stats.Protons,
			FreeProtons: stats.FreeProtons,
			BondedPairs: stats.BondedPairs,
			StrongBases: stats.StrongBases,
			WeakBases:   stats.WeakBases,
		}
		result.Frames = append(result.Frames, f)

		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(r.beaker, f)
		}
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", cfg.Duration)
	}
	return nil
}

// BondedSeries extracts the bonded-pair count per frame, for plotting and
// frequency analysis.
func (r *Result) BondedSeries() []float64 {
	series := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		series[i] = float64(f.BondedPairs)
	}
	return series
}
