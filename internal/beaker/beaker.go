package beaker

import (
	"math/rand"

	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/particle"
)

// Beaker owns the particle population and the solution region bounding its
// motion. All mutation happens inside Step, AddParticles and RemoveParticles
// on a single goroutine; there is no internal locking.
type Beaker struct {
	solution engine.Rect
	clock    engine.Clock
	rng      *rand.Rand
	traits   map[particle.Kind]particle.Traits

	all    []particle.Particle
	groups map[particle.Kind][]particle.Particle
}

// New creates an empty beaker over the given solution region. The clock
// drives bond timers; the rng drives placement and velocity draws.
func New(solution engine.Rect, clock engine.Clock, rng *rand.Rand) *Beaker {
	traits := make(map[particle.Kind]particle.Traits, len(particle.Kinds()))
	for _, k := range particle.Kinds() {
		traits[k] = particle.DefaultTraits(k)
	}
	return &Beaker{
		solution: solution,
		clock:    clock,
		rng:      rng,
		traits:   traits,
		groups:   make(map[particle.Kind][]particle.Particle),
	}
}

func (b *Beaker) Solution() engine.Rect { return b.solution }

// SetTraits overrides the configuration for one species. Affects particles
// added afterwards only.
func (b *Beaker) SetTraits(k particle.Kind, t particle.Traits) { b.traits[k] = t }

func (b *Beaker) Traits(k particle.Kind) particle.Traits { return b.traits[k] }

// Particles returns the whole population in registration order. Callers must
// not mutate the slice.
func (b *Beaker) Particles() []particle.Particle { return b.all }

// Count returns the current population of one species.
func (b *Beaker) Count(k particle.Kind) int { return len(b.groups[k]) }

// AddParticles places up to quantity particles of the given species at
// uniformly random points that leave a full radius of room on every side of
// the solution region. Placements that cannot fit are skipped silently, so
// the returned count may be less than requested.
func (b *Beaker) AddParticles(kind particle.Kind, quantity int) int {
	placed := 0
	for i := 0; i < quantity; i++ {
		x, y, ok := b.placeWithin(b.traits[kind].Radius)
		if !ok {
			continue
		}
		p := b.newParticle(kind, x, y)
		b.all = append(b.all, p)
		b.groups[kind] = append(b.groups[kind], p)
		placed++
	}
	return placed
}

// placeWithin samples a point keeping margin from every edge. Fails when the
// particle's diameter does not fit in either solution dimension.
func (b *Beaker) placeWithin(radius float64) (float64, float64, bool) {
	w := b.solution.Width - 2*radius
	h := b.solution.Height - 2*radius
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	x := b.solution.X + radius + b.rng.Float64()*w
	y := b.solution.Y + radius + b.rng.Float64()*h
	return x, y, true
}

func (b *Beaker) newParticle(kind particle.Kind, x, y float64) particle.Particle {
	t := b.traits[kind]
	switch kind {
	case particle.KindProton:
		return particle.NewProton(x, y, t, b.rng)
	default:
		return particle.NewConjugateBase(kind, x, y, t, b.clock, b.rng)
	}
}

// RemoveParticles removes up to quantity particles of the given species,
// most recently added first, clamped to however many exist. Bonded particles
// are detached first so the surviving partner holds no dangling reference.
func (b *Beaker) RemoveParticles(kind particle.Kind, quantity int) int {
	group := b.groups[kind]
	if quantity > len(group) {
		quantity = len(group)
	}

	for i := 0; i < quantity; i++ {
		p := group[len(group)-1]
		group = group[:len(group)-1]
		b.detach(p)
		b.unregister(p)
	}
	b.groups[kind] = group
	return quantity
}

func (b *Beaker) detach(p particle.Particle) {
	switch v := p.(type) {
	case *particle.Proton:
		v.Detach()
	case *particle.ConjugateBase:
		v.Detach()
	}
}

func (b *Beaker) unregister(p particle.Particle) {
	for i, other := range b.all {
		if other == p {
			b.all = append(b.all[:i], b.all[i+1:]...)
			return
		}
	}
}

// Step advances the simulation by one frame. For every particle, in
// registration order: reflect off the solution boundary, resolve collisions
// against each species in its reaction table, move by velocity, then run the
// particle's own update. Reactions may mutate bond state mid-step; particles
// are never removed mid-step.
func (b *Beaker) Step() {
	for _, p := range b.all {
		b.reflect(p.Sprite())

		for kind, react := range p.Reactions() {
			for _, other := range b.groups[kind] {
				if other == p {
					continue
				}
				if engine.Overlaps(p.Sprite(), other.Sprite()) {
					react(p, other)
				}
			}
		}

		p.Sprite().Move()
		p.Update()
	}
}

// reflect forces velocity away from any boundary edge the sprite's leading
// edge touches. Horizontal and vertical are checked independently, so a
// corner hit flips both components in the same frame.
func (b *Beaker) reflect(s *engine.Sprite) {
	if s.X-s.Radius <= b.solution.X && s.VX < 0 {
		s.VX = -s.VX
	}
	if s.X+s.Radius >= b.solution.MaxX() && s.VX > 0 {
		s.VX = -s.VX
	}
	if s.Y-s.Radius <= b.solution.Y && s.VY < 0 {
		s.VY = -s.VY
	}
	if s.Y+s.Radius >= b.solution.MaxY() && s.VY > 0 {
		s.VY = -s.VY
	}
}
