package metrics

import "github.com/san-kum/beakersim/internal/sim"

// BondedFraction averages the share of protons held in a bond per frame.
type BondedFraction struct {
	samples int
	total   float64
}

func NewBondedFraction() *BondedFraction { return &BondedFraction{} }

func (m *BondedFraction) Name() string { return "bonded_fraction" }

func (m *BondedFraction) Observe(f sim.Frame) {
	if f.Protons == 0 {
		return
	}
	m.total += float64(f.BondedPairs) / float64(f.Protons)
	m.samples++
}

func (m *BondedFraction) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *BondedFraction) Reset() {
	m.samples = 0
	m.total = 0
}

// FreeProtons averages the free proton count per frame, a stand-in for the
// qualitative "acidity" of the solution.
type FreeProtons struct {
	samples int
	total   float64
}

func NewFreeProtons() *FreeProtons { return &FreeProtons{} }

func (m *FreeProtons) Name() string { return "free_protons" }

func (m *FreeProtons) Observe(f sim.Frame) {
	m.total += float64(f.FreeProtons)
	m.samples++
}

func (m *FreeProtons) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *FreeProtons) Reset() {
	m.samples = 0
	m.total = 0
}

// BondEvents counts capture events: every frame-over-frame increase in the
// bonded pair count.
type BondEvents struct {
	prev   int
	first  bool
	events int
}

func NewBondEvents() *BondEvents { return &BondEvents{first: true} }

func (m *BondEvents) Name() string { return "bond_events" }

func (m *BondEvents) Observe(f sim.Frame) {
	if m.first {
		m.events += f.BondedPairs
		m.first = false
	} else if f.BondedPairs > m.prev {
		m.events += f.BondedPairs - m.prev
	}
	m.prev = f.BondedPairs
}

func (m *BondEvents) Value() float64 { return float64(m.events) }

func (m *BondEvents) Reset() {
	m.prev = 0
	m.first = true
	m.events = 0
}

// Defaults returns the standard metric set recorded for every run.
func Defaults() []sim.Metric {
	return []sim.Metric{NewBondedFraction(), NewFreeProtons(), NewBondEvents()}
}
