// Package verlet implements a position-Verlet solver for a 2-D granular
// medium of circular particles.
//
// A [Solver] owns a dense, insertion-ordered slice of [Particle] values
// and a uniform-grid [Partition] used as the collision broad-phase. Each
// call to [Solver.Update] runs a fixed number of sub-steps, in order:
//
//  1. gravity accumulation
//  2. circular arena constraint
//  3. partition rebuild
//  4. pairwise collision resolution
//  5. integration
//
// Velocity is never stored; it is the difference between the current and
// the previous position. Collisions and the arena wall only move the
// current position, which bleeds velocity out of the system on contact.
//
// # Identity
//
// A particle's id is its index in insertion order. Ids stay valid until
// [Solver.Clear]; there is no per-particle removal.
//
// # Thread Safety
//
// Solver is not safe for concurrent use. Readers outside the update loop
// go through [Solver.Apply], which hands out copies.
package verlet
