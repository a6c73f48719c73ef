package particle

import (
	"math/rand"
	"time"

	"github.com/san-kum/beakersim/internal/engine"
)

// BondPhase describes where a conjugate base is in its bond lifecycle.
type BondPhase int

const (
	// PhaseFree: no proton held, capture possible.
	PhaseFree BondPhase = iota
	// PhaseBonded: proton held and position-slaved to the base.
	PhaseBonded
	// PhaseReleasing: proton drifts freely but the pair still counts as
	// bonded, so neither side can form a new bond yet.
	PhaseReleasing
)

func (p BondPhase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhaseBonded:
		return "bonded"
	case PhaseReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// ConjugateBase captures a free proton on contact and holds it for a
// randomized duration before letting it drift off. Strong and weak variants
// are the same type configured with different release delays.
type ConjugateBase struct {
	sprite engine.Sprite
	kind   Kind
	traits Traits
	clock  engine.Clock
	rng    *rand.Rand

	reactions map[Kind]Reaction

	proton     *Proton
	releaseAt  time.Time
	savedDepth int
}

// NewConjugateBase creates a base of the given kind (KindStrongBase or
// KindWeakBase) at (x, y) with a random velocity per axis.
func NewConjugateBase(kind Kind, x, y float64, traits Traits, clock engine.Clock, rng *rand.Rand) *ConjugateBase {
	vx, vy := randomVelocity(rng, traits.MaxVelocity)
	b := &ConjugateBase{
		sprite: engine.Sprite{
			X: x, Y: y,
			VX: vx, VY: vy,
			Radius: traits.Radius,
			Image:  traits.Image,
		},
		kind:   kind,
		traits: traits,
		clock:  clock,
		rng:    rng,
	}
	b.reactions = map[Kind]Reaction{
		KindProton: captureReaction,
	}
	return b
}

func captureReaction(self, other Particle) {
	base, ok := self.(*ConjugateBase)
	if !ok {
		return
	}
	proton, ok := other.(*Proton)
	if !ok {
		return
	}
	base.Capture(proton)
}

func (b *ConjugateBase) Sprite() *engine.Sprite       { return &b.sprite }
func (b *ConjugateBase) Kind() Kind                   { return b.kind }
func (b *ConjugateBase) Reactions() map[Kind]Reaction { return b.reactions }

func (b *ConjugateBase) Bonded() bool { return b.proton != nil }

// Proton returns the currently held proton, or nil.
func (b *ConjugateBase) Proton() *Proton { return b.proton }

// ReleaseAt returns when the held proton stops being position-slaved. Zero
// while free.
func (b *ConjugateBase) ReleaseAt() time.Time { return b.releaseAt }

// Phase reports the current bond lifecycle phase.
func (b *ConjugateBase) Phase() BondPhase {
	switch {
	case b.proton == nil:
		return PhaseFree
	case b.clock.Now().Before(b.releaseAt):
		return PhaseBonded
	default:
		return PhaseReleasing
	}
}

// Capture bonds a free proton to a free base. It is a no-op when either side
// is already part of a bond, so re-colliding pairs are harmless. The hold
// duration is ReleaseDelay[0] plus a uniformly scaled ReleaseDelay[1]; the
// proton is drawn just above the base while held.
func (b *ConjugateBase) Capture(p *Proton) bool {
	if b.proton != nil || p.base != nil {
		return false
	}

	b.proton = p
	p.base = b

	delay := b.traits.ReleaseDelay[0] +
		time.Duration(b.rng.Float64()*float64(b.traits.ReleaseDelay[1]))
	b.releaseAt = b.clock.Now().Add(delay)

	b.savedDepth = p.sprite.Depth
	p.sprite.Depth = b.sprite.Depth + 1
	return true
}

// Update drives the bond lifecycle once per frame. While bonded the proton is
// pinned to the base plus the bond offset; during the cooldown after release
// it drifts under its own velocity but cannot rebond; once the cooldown
// passes, both sides are detached.
func (b *ConjugateBase) Update() {
	if b.proton == nil {
		return
	}

	now := b.clock.Now()
	switch {
	case now.Before(b.releaseAt):
		b.pin()
	case now.Before(b.releaseAt.Add(b.traits.Cooldown)):
		// Cooldown window: nothing to do, the proton just drifts.
	default:
		b.detach()
	}
}

// pin forces the held proton onto the base position plus the bond offset.
// Called from both sides of the bond: the proton re-pins on its own update so
// that stepping after its base in the same frame cannot drag it off the
// offset.
func (b *ConjugateBase) pin() {
	b.proton.sprite.X = b.sprite.X + b.traits.BondOffsetX
	b.proton.sprite.Y = b.sprite.Y + b.traits.BondOffsetY
}

func (b *ConjugateBase) detach() {
	b.proton.sprite.Depth = b.savedDepth
	b.proton.base = nil
	b.proton = nil
	b.releaseAt = time.Time{}
}

// Detach force-clears the bond from either side, for population removal.
// Removing a bonded particle must not leave a dangling reference behind.
func (b *ConjugateBase) Detach() {
	if b.proton != nil {
		b.detach()
	}
}
