package particle

import (
	"math/rand"

	"github.com/san-kum/beakersim/internal/engine"
)

// Proton is an inert particle that conjugate bases can capture. While
// captured its position is driven by the partner base's Update.
type Proton struct {
	sprite engine.Sprite
	base   *ConjugateBase
}

// NewProton creates a proton at (x, y) with a random velocity per axis.
func NewProton(x, y float64, traits Traits, rng *rand.Rand) *Proton {
	vx, vy := randomVelocity(rng, traits.MaxVelocity)
	return &Proton{
		sprite: engine.Sprite{
			X: x, Y: y,
			VX: vx, VY: vy,
			Radius: traits.Radius,
			Image:  traits.Image,
		},
	}
}

func (p *Proton) Sprite() *engine.Sprite       { return &p.sprite }
func (p *Proton) Kind() Kind                   { return KindProton }
func (p *Proton) Reactions() map[Kind]Reaction { return nil }

// Update re-applies the pin while a base holds this proton. The beaker moves
// the proton by velocity before updating it, so without the re-pin a proton
// registered after its base drifts off the bond offset every frame.
func (p *Proton) Update() {
	if p.base != nil && p.base.Phase() == PhaseBonded {
		p.base.pin()
	}
}

func (p *Proton) Bonded() bool { return p.base != nil }

// Base returns the conjugate base currently holding this proton, or nil.
func (p *Proton) Base() *ConjugateBase { return p.base }

// Detach clears the bond, if any, from the proton side. Used when the proton
// is removed from the population so the base is not left pointing at it.
func (p *Proton) Detach() {
	if p.base != nil {
		p.base.Detach()
	}
}
