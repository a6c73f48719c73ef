// Package beaker owns the particle population and steps it once per frame.
//
// A [Beaker] tracks every particle twice: once in the all-particles slice
// (registration order, which is also step order) and once in its per-species
// group (what reaction tables are resolved against). Add and remove keep the
// two views consistent.
//
// [Beaker.Step] runs, for each particle in order: boundary reflection off the
// solution region, collision resolution via the particle's reaction table,
// movement by velocity, then the particle's own update. Everything is
// single-threaded; mutation happens only inside Step, AddParticles and
// RemoveParticles.
package beaker
