package config

import "sort"

// Presets are named scenarios for the classroom demos.
var Presets = map[string]*Config{
	"equilibrium": {
		Solution: SolutionConfig{Width: 360, Height: 240},
		Species:  SpeciesConfig{Protons: 12, StrongBases: 4, WeakBases: 4},
		FPS:      60, Duration: 30,
	},
	"acidic": {
		Solution: SolutionConfig{Width: 360, Height: 240},
		Species:  SpeciesConfig{Protons: 24, StrongBases: 2, WeakBases: 2},
		FPS:      60, Duration: 30,
	},
	"basic": {
		Solution: SolutionConfig{Width: 360, Height: 240},
		Species:  SpeciesConfig{Protons: 4, StrongBases: 10, WeakBases: 6},
		FPS:      60, Duration: 30,
	},
	"dilute": {
		Solution: SolutionConfig{Width: 500, Height: 360},
		Species:  SpeciesConfig{Protons: 5, StrongBases: 2, WeakBases: 2},
		FPS:      60, Duration: 45,
	},
	"crowded": {
		Solution: SolutionConfig{Width: 240, Height: 160},
		Species:  SpeciesConfig{Protons: 30, StrongBases: 10, WeakBases: 10},
		FPS:      60, Duration: 20,
	},
}

// GetPreset returns the named scenario, or nil when unknown. The returned
// config is a copy, safe to mutate.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
