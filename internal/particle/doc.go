// Package particle defines the species that live in the beaker and the bond
// lifecycle between them.
//
// The closed set of species:
//
//   - [Proton]: inert drifter, capturable by a conjugate base
//   - [ConjugateBase]: captures a free proton on contact and holds it for a
//     randomized duration; strong and weak variants differ only in traits
//
// A bond walks three phases on the base's per-frame [ConjugateBase.Update]:
//
//	Free -> Bonded -> Releasing -> Free
//
// While Bonded the proton is pinned to the base plus a fixed offset. While
// Releasing it drifts under its own velocity but both sides still report
// bonded, which blocks rebonding until the cooldown passes.
//
// Timers run on an injected [engine.Clock], so the lifecycle is wall-clock
// driven in live use and fully deterministic under test.
package particle
