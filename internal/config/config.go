package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/beakersim/internal/particle"
)

const (
	DefaultFPS      = 60
	DefaultDuration = 30.0
	DefaultWidth    = 360.0
	DefaultHeight   = 240.0
)

// Config describes one simulation scenario: the solution geometry, how many
// of each species to pour in, frame rate and duration, and optional per
// species trait overrides.
type Config struct {
	Solution SolutionConfig          `yaml:"solution"`
	Species  SpeciesConfig           `yaml:"species"`
	FPS      int                     `yaml:"fps"`
	Duration float64                 `yaml:"duration"` // seconds
	Seed     int64                   `yaml:"seed"`
	Traits   map[string]TraitsConfig `yaml:"traits"`
}

type SolutionConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SpeciesConfig struct {
	Protons     int `yaml:"protons"`
	StrongBases int `yaml:"strong_bases"`
	WeakBases   int `yaml:"weak_bases"`
}

// TraitsConfig overrides species constants; zero fields keep the default.
type TraitsConfig struct {
	Radius          float64 `yaml:"radius"`
	MaxVelocity     float64 `yaml:"max_velocity"`
	Image           string  `yaml:"image"`
	ReleaseDelayMs  float64 `yaml:"release_delay_ms"`
	ReleaseSpreadMs float64 `yaml:"release_spread_ms"`
	CooldownMs      float64 `yaml:"cooldown_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Solution: SolutionConfig{Width: DefaultWidth, Height: DefaultHeight},
		Species:  SpeciesConfig{Protons: 12, StrongBases: 4, WeakBases: 4},
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildTraits merges the per-species overrides onto the stock traits.
func (c *Config) BuildTraits() map[particle.Kind]particle.Traits {
	out := make(map[particle.Kind]particle.Traits, len(particle.Kinds()))
	for _, k := range particle.Kinds() {
		t := particle.DefaultTraits(k)
		if ov, ok := c.Traits[k.String()]; ok {
			if ov.Radius > 0 {
				t.Radius = ov.Radius
			}
			if ov.MaxVelocity > 0 {
				t.MaxVelocity = ov.MaxVelocity
			}
			if ov.Image != "" {
				t.Image = ov.Image
			}
			if ov.ReleaseDelayMs > 0 {
				t.ReleaseDelay[0] = time.Duration(ov.ReleaseDelayMs * float64(time.Millisecond))
			}
			if ov.ReleaseSpreadMs > 0 {
				t.ReleaseDelay[1] = time.Duration(ov.ReleaseSpreadMs * float64(time.Millisecond))
			}
			if ov.CooldownMs > 0 {
				t.Cooldown = time.Duration(ov.CooldownMs * float64(time.Millisecond))
			}
		}
		out[k] = t
	}
	return out
}
