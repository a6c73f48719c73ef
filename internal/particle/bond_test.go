package particle_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/beakersim/internal/engine"
	"github.com/san-kum/beakersim/internal/particle"
)

var _ = Describe("ConjugateBase bond lifecycle", func() {
	var (
		clock  *engine.FrameClock
		rng    *rand.Rand
		traits particle.Traits
		base   *particle.ConjugateBase
		proton *particle.Proton
		t0     time.Time
	)

	BeforeEach(func() {
		t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		clock = engine.NewFrameClock(t0, time.Second/60)
		rng = rand.New(rand.NewSource(42))

		traits = particle.DefaultTraits(particle.KindStrongBase)
		traits.ReleaseDelay = [2]time.Duration{2 * time.Second, time.Second}
		traits.Cooldown = 500 * time.Millisecond

		base = particle.NewConjugateBase(particle.KindStrongBase, 50, 50, traits, clock, rng)
		proton = particle.NewProton(55, 45, particle.DefaultTraits(particle.KindProton), rng)
	})

	It("starts free", func() {
		Expect(base.Phase()).To(Equal(particle.PhaseFree))
		Expect(base.Bonded()).To(BeFalse())
		Expect(proton.Bonded()).To(BeFalse())
	})

	Describe("Capture", func() {
		It("bonds both sides symmetrically", func() {
			Expect(base.Capture(proton)).To(BeTrue())
			Expect(base.Proton()).To(BeIdenticalTo(proton))
			Expect(proton.Base()).To(BeIdenticalTo(base))
			Expect(base.Phase()).To(Equal(particle.PhaseBonded))
		})

		It("schedules release as base delay plus a scaled spread", func() {
			// The delay must land in [delay0, delay0+delay1], never
			// interpolated as if the pair were a [min, max] range.
			Expect(base.Capture(proton)).To(BeTrue())
			got := base.ReleaseAt().Sub(t0)
			Expect(got).To(BeNumerically(">=", 2*time.Second))
			Expect(got).To(BeNumerically("<=", 3*time.Second))
		})

		It("raises the proton's draw depth above the base", func() {
			base.Sprite().Depth = 3
			proton.Sprite().Depth = 1
			base.Capture(proton)
			Expect(proton.Sprite().Depth).To(Equal(4))
		})

		It("refuses a proton that is already held", func() {
			other := particle.NewConjugateBase(particle.KindWeakBase, 80, 80,
				particle.DefaultTraits(particle.KindWeakBase), clock, rng)
			Expect(base.Capture(proton)).To(BeTrue())
			Expect(other.Capture(proton)).To(BeFalse())
			Expect(other.Bonded()).To(BeFalse())
			Expect(proton.Base()).To(BeIdenticalTo(base))
		})

		It("refuses a second proton while holding one", func() {
			second := particle.NewProton(60, 60, particle.DefaultTraits(particle.KindProton), rng)
			Expect(base.Capture(proton)).To(BeTrue())
			Expect(base.Capture(second)).To(BeFalse())
			Expect(second.Bonded()).To(BeFalse())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			base.Capture(proton)
		})

		It("pins the proton to the base plus the bond offset while bonded", func() {
			base.Sprite().X = 120
			base.Sprite().Y = 80
			base.Update()
			Expect(proton.Sprite().X).To(Equal(120 + traits.BondOffsetX))
			Expect(proton.Sprite().Y).To(Equal(80 + traits.BondOffsetY))
		})

		It("stops pinning at the release time but stays bonded", func() {
			clock.Advance(base.ReleaseAt().Sub(t0))
			proton.Sprite().X = 999
			base.Update()
			Expect(proton.Sprite().X).To(Equal(999.0), "proton should drift freely")
			Expect(base.Phase()).To(Equal(particle.PhaseReleasing))
			Expect(base.Bonded()).To(BeTrue())
			Expect(proton.Bonded()).To(BeTrue())
		})

		It("detaches both sides once the cooldown passes", func() {
			// Re-do the capture from BeforeEach with a distinctive depth so
			// the restore is observable.
			base.Detach()
			proton.Sprite().Depth = 7
			savedDepth := 7
			base.Capture(proton)

			clock.Advance(base.ReleaseAt().Sub(t0) + traits.Cooldown)
			base.Update()

			Expect(base.Phase()).To(Equal(particle.PhaseFree))
			Expect(base.Proton()).To(BeNil())
			Expect(proton.Base()).To(BeNil())
			Expect(base.ReleaseAt().IsZero()).To(BeTrue())
			Expect(proton.Sprite().Depth).To(Equal(savedDepth))
		})

		It("allows rebonding after a full release", func() {
			clock.Advance(base.ReleaseAt().Sub(t0) + traits.Cooldown)
			base.Update()
			Expect(base.Capture(proton)).To(BeTrue())
		})
	})

	Describe("deterministic timing", func() {
		It("computes the exact release time for a known random draw", func() {
			b := particle.NewConjugateBase(particle.KindStrongBase, 0, 0, traits, clock,
				rand.New(rand.NewSource(7)))

			// Replay the same stream: the constructor consumes two draws for
			// velocity, the third is the release fraction.
			replay := rand.New(rand.NewSource(7))
			replay.Float64()
			replay.Float64()
			fraction := replay.Float64()

			p := particle.NewProton(0, 0, particle.DefaultTraits(particle.KindProton),
				rand.New(rand.NewSource(1)))
			Expect(b.Capture(p)).To(BeTrue())

			want := t0.Add(traits.ReleaseDelay[0] +
				time.Duration(fraction*float64(traits.ReleaseDelay[1])))
			Expect(b.ReleaseAt()).To(BeTemporally("==", want))
		})
	})
})
