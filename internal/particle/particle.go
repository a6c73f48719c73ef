package particle

import (
	"math/rand"
	"time"

	"github.com/san-kum/beakersim/internal/engine"
)

// Kind tags the closed set of particle species in the solution.
type Kind int

const (
	KindProton Kind = iota
	KindStrongBase
	KindWeakBase
)

func (k Kind) String() string {
	switch k {
	case KindProton:
		return "proton"
	case KindStrongBase:
		return "strong_base"
	case KindWeakBase:
		return "weak_base"
	default:
		return "unknown"
	}
}

// Kinds lists every species, in stable order.
func Kinds() []Kind {
	return []Kind{KindProton, KindStrongBase, KindWeakBase}
}

// Reaction handles a collision between self and other. Handlers must tolerate
// being invoked again for a pair that already reacted.
type Reaction func(self, other Particle)

// Particle is a movable sprite with per-collision behavior. The beaker drives
// each particle once per frame: boundary check, reactions, then Update.
type Particle interface {
	Sprite() *engine.Sprite
	Kind() Kind
	// Reactions maps a species to the handler run when a particle of that
	// species overlaps this one. A nil map means inert.
	Reactions() map[Kind]Reaction
	// Update runs once per frame after collision resolution.
	Update()
	// Bonded reports whether the particle is currently part of a bond,
	// including the post-release cooldown window.
	Bonded() bool
}

// Traits holds the per-species configuration constants.
type Traits struct {
	Radius      float64
	MaxVelocity float64
	Image       string

	// Bond behavior; only meaningful for conjugate bases.
	BondOffsetX float64
	BondOffsetY float64
	// ReleaseDelay determines how long a captured proton is held:
	// delay = ReleaseDelay[0] + U(0,1)*ReleaseDelay[1].
	ReleaseDelay [2]time.Duration
	// Cooldown is the window after release during which the pair still
	// counts as bonded and cannot rebond.
	Cooldown time.Duration
}

// DefaultTraits returns the stock configuration for a species.
func DefaultTraits(k Kind) Traits {
	switch k {
	case KindProton:
		return Traits{
			Radius:      8,
			MaxVelocity: 2.5,
			Image:       "assets/proton.png",
		}
	case KindStrongBase:
		return Traits{
			Radius:       14,
			MaxVelocity:  1.2,
			Image:        "assets/strong_base.png",
			BondOffsetX:  10,
			BondOffsetY:  -10,
			ReleaseDelay: [2]time.Duration{8 * time.Second, 4 * time.Second},
			Cooldown:     time.Second,
		}
	case KindWeakBase:
		return Traits{
			Radius:       14,
			MaxVelocity:  1.2,
			Image:        "assets/weak_base.png",
			BondOffsetX:  10,
			BondOffsetY:  -10,
			ReleaseDelay: [2]time.Duration{time.Second, 2 * time.Second},
			Cooldown:     time.Second,
		}
	default:
		return Traits{}
	}
}

// randomVelocity draws each component uniformly from [-max, +max].
func randomVelocity(rng *rand.Rand, max float64) (float64, float64) {
	return (rng.Float64()*2 - 1) * max, (rng.Float64()*2 - 1) * max
}
