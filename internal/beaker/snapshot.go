package beaker

import (
	"sort"

	"github.com/san-kum/beakersim/internal/particle"
)

// Stats summarizes the population at one instant.
type Stats struct {
	Protons     int `json:"protons"`
	StrongBases int `json:"strong_bases"`
	WeakBases   int `json:"weak_bases"`
	BondedPairs int `json:"bonded_pairs"`
	FreeProtons int `json:"free_protons"`
}

// Stats counts the population per species and per bond status.
func (b *Beaker) Stats() Stats {
	s := Stats{
		Protons:     b.Count(particle.KindProton),
		StrongBases: b.Count(particle.KindStrongBase),
		WeakBases:   b.Count(particle.KindWeakBase),
	}
	for _, p := range b.groups[particle.KindProton] {
		if p.Bonded() {
			s.BondedPairs++
		} else {
			s.FreeProtons++
		}
	}
	return s
}

// ParticleView is a drawable, serializable view of one particle.
type ParticleView struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Depth  int     `json:"depth"`
	Image  string  `json:"image"`
	Bonded bool    `json:"bonded"`
}

// Snapshot returns the population in draw order: ascending depth, with
// registration order breaking ties. Bonded protons were raised above their
// base at capture time, so they render on top of it.
func (b *Beaker) Snapshot() []ParticleView {
	views := make([]ParticleView, 0, len(b.all))
	for _, p := range b.all {
		s := p.Sprite()
		views = append(views, ParticleView{
			Kind:   p.Kind().String(),
			X:      s.X,
			Y:      s.Y,
			Radius: s.Radius,
			Depth:  s.Depth,
			Image:  s.Image,
			Bonded: p.Bonded(),
		})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Depth < views[j].Depth })
	return views
}
