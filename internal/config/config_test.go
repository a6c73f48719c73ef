package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/beakersim/internal/particle"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Solution.Width <= 0 || cfg.Solution.Height <= 0 {
		t.Error("solution dimensions should be positive")
	}
	if cfg.Species.Protons == 0 {
		t.Error("default scenario should pour some protons")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := []byte(`
solution:
  width: 100
  height: 100
species:
  protons: 3
  strong_bases: 1
seed: 42
traits:
  strong_base:
    release_delay_ms: 5000
    release_spread_ms: 1000
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Solution.Width != 100 {
		t.Errorf("width = %v, want 100", cfg.Solution.Width)
	}
	if cfg.Species.Protons != 3 {
		t.Errorf("protons = %d, want 3", cfg.Species.Protons)
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
	// Unset fields keep defaults.
	if cfg.FPS != DefaultFPS {
		t.Errorf("fps = %d, want default %d", cfg.FPS, DefaultFPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/scenario.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildTraits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Traits = map[string]TraitsConfig{
		"strong_base": {
			Radius:          20,
			ReleaseDelayMs:  5000,
			ReleaseSpreadMs: 1000,
			CooldownMs:      250,
		},
	}

	traits := cfg.BuildTraits()

	strong := traits[particle.KindStrongBase]
	if strong.Radius != 20 {
		t.Errorf("radius = %v, want 20", strong.Radius)
	}
	if strong.ReleaseDelay[0] != 5*time.Second {
		t.Errorf("release delay = %v, want 5s", strong.ReleaseDelay[0])
	}
	if strong.ReleaseDelay[1] != time.Second {
		t.Errorf("release spread = %v, want 1s", strong.ReleaseDelay[1])
	}
	if strong.Cooldown != 250*time.Millisecond {
		t.Errorf("cooldown = %v, want 250ms", strong.Cooldown)
	}
	// Fields without overrides stay stock.
	def := particle.DefaultTraits(particle.KindStrongBase)
	if strong.MaxVelocity != def.MaxVelocity {
		t.Errorf("max velocity = %v, want default %v", strong.MaxVelocity, def.MaxVelocity)
	}
	// Untouched species stay fully stock.
	if traits[particle.KindProton] != particle.DefaultTraits(particle.KindProton) {
		t.Error("proton traits should be unchanged")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("acidic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Species.Protons <= cfg.Species.StrongBases {
		t.Error("acidic preset should be proton-heavy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
