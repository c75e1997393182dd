package verlet

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultSubSteps    = 8
	DefaultArenaRadius = 450.0
)

// DefaultGravity points down the screen (y grows downward).
var DefaultGravity = r2.Vec{X: 0, Y: 982}

// Config holds the solver tunables.
type Config struct {
	SubSteps    int
	Gravity     r2.Vec
	ArenaRadius float64
	CellSize    float64
}

func DefaultConfig() Config {
	return Config{
		SubSteps:    DefaultSubSteps,
		Gravity:     DefaultGravity,
		ArenaRadius: DefaultArenaRadius,
		CellSize:    DefaultCellSize,
	}
}

// Stats are the debug counters exposed to drivers.
type Stats struct {
	Objects       int
	Collisions    int
	AverageRadius float64
}

// Solver advances the particle set in fixed sub-steps.
type Solver struct {
	cfg       Config
	objects   []Particle
	partition *Partition
	spawner   Spawner

	radiusSum     float64
	numCollisions int
}

// New creates a solver. A nil spawner uses NewRandomSpawner(1).
func New(cfg Config, spawner Spawner) *Solver {
	if cfg.SubSteps < 1 {
		cfg.SubSteps = 1
	}
	if cfg.ArenaRadius < 0 {
		cfg.ArenaRadius = 0
	}
	if spawner == nil {
		spawner = NewRandomSpawner(1)
	}
	return &Solver{
		cfg:       cfg,
		objects:   make([]Particle, 0, 1024),
		partition: NewPartition(cfg.CellSize),
		spawner:   spawner,
	}
}

func (s *Solver) Config() Config { return s.cfg }

// AddObject appends a particle produced by the solver's spawner and
// returns its id.
func (s *Solver) AddObject() int {
	return s.AddParticle(s.spawner.Spawn(len(s.objects)))
}

// AddParticle appends p as given and returns its id.
func (s *Solver) AddParticle(p Particle) int {
	s.objects = append(s.objects, p)
	s.radiusSum += p.Radius
	return len(s.objects) - 1
}

// Clear removes every particle. Previously issued ids become invalid.
func (s *Solver) Clear() {
	s.objects = s.objects[:0]
	s.partition.Clear()
	s.radiusSum = 0
	s.numCollisions = 0
}

// Apply calls fn with a copy of each particle in insertion order.
func (s *Solver) Apply(fn func(Particle)) {
	for _, o := range s.objects {
		fn(o)
	}
}

// Particle returns a copy of the particle with the given id.
func (s *Solver) Particle(id int) (Particle, bool) {
	if id < 0 || id >= len(s.objects) {
		return Particle{}, false
	}
	return s.objects[id], true
}

func (s *Solver) Len() int { return len(s.objects) }

func (s *Solver) ArenaRadius() float64 { return s.cfg.ArenaRadius }

func (s *Solver) SetArenaRadius(r float64) {
	if r < 0 {
		r = 0
	}
	s.cfg.ArenaRadius = r
}

func (s *Solver) CellSize() float64 { return s.partition.CellSize() }

func (s *Solver) SetCellSize(cs float64) {
	s.partition.SetCellSize(cs)
	s.cfg.CellSize = s.partition.CellSize()
}

// SetSpawner replaces the policy used by AddObject.
func (s *Solver) SetSpawner(sp Spawner) {
	if sp != nil {
		s.spawner = sp
	}
}

// Stats returns the debug counters. Collisions is the per-sub-step
// average over the last Update.
func (s *Solver) Stats() Stats {
	st := Stats{Objects: len(s.objects), Collisions: s.numCollisions}
	if len(s.objects) > 0 {
		st.AverageRadius = s.radiusSum / float64(len(s.objects))
	}
	return st
}

// Update advances the simulation by dt in SubSteps equal sub-steps.
func (s *Solver) Update(dt float64) {
	subDt := dt / float64(s.cfg.SubSteps)

	s.numCollisions = 0
	for i := 0; i < s.cfg.SubSteps; i++ {
		s.applyGravity()
		s.applyConstraint()
		s.rebuildPartition()
		s.solveCollisions()
		s.integrate(subDt)
	}
	s.numCollisions /= s.cfg.SubSteps
}

func (s *Solver) applyGravity() {
	for i := range s.objects {
		s.objects[i].Accelerate(s.cfg.Gravity)
	}
}

// applyConstraint projects every particle back inside the arena. Only the
// current position moves.
func (s *Solver) applyConstraint() {
	for i := range s.objects {
		o := &s.objects[i]
		limit := math.Max(s.cfg.ArenaRadius-o.Radius, 0)
		dist := r2.Norm(o.Position)
		if dist > limit && dist > 0 {
			o.Position = r2.Scale(limit/dist, o.Position)
		}
	}
}

func (s *Solver) rebuildPartition() {
	s.partition.Clear()
	for id := range s.objects {
		s.partition.Insert(s.objects[id], id)
	}
}

// solveCollisions resolves each overlapping pair once per candidate
// report, lower id first. Coincident centres are skipped.
func (s *Solver) solveCollisions() {
	for i := range s.objects {
		s.partition.ForEachCandidate(s.objects[i], func(id int) {
			if id <= i {
				return
			}
			a, b := &s.objects[i], &s.objects[id]

			axis := r2.Sub(a.Position, b.Position)
			dist := r2.Norm(axis)
			minDist := a.Radius + b.Radius
			if dist > 0 && dist < minDist {
				push := r2.Scale(0.5*(minDist-dist)/dist, axis)
				a.Position = r2.Add(a.Position, push)
				b.Position = r2.Sub(b.Position, push)
				s.numCollisions++
			}
		})
	}
}

func (s *Solver) integrate(dt float64) {
	for i := range s.objects {
		s.objects[i].Integrate(dt)
	}
}
