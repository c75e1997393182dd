package metrics

import (
	"math"

	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Penetration tracks the worst pairwise overlap left after a tick. It
// runs its own broad-phase so the solver's partition is never touched.
type Penetration struct {
	name    string
	grid    *verlet.Partition
	buf     []verlet.Particle
	samples []float64
}

func NewPenetration() *Penetration {
	return &Penetration{name: "max_penetration"}
}

func (p *Penetration) Name() string { return p.name }

func (p *Penetration) Observe(s *verlet.Solver, t float64) {
	if p.grid == nil || p.grid.CellSize() != s.CellSize() {
		p.grid = verlet.NewPartition(s.CellSize())
	}
	p.grid.Clear()
	p.buf = p.buf[:0]
	s.Apply(func(q verlet.Particle) {
		p.grid.Insert(q, len(p.buf))
		p.buf = append(p.buf, q)
	})

	worst := 0.0
	for i, a := range p.buf {
		p.grid.ForEachCandidate(a, func(j int) {
			if j <= i {
				return
			}
			b := p.buf[j]
			d := r2.Norm(r2.Sub(a.Position, b.Position))
			if overlap := a.Radius + b.Radius - d; overlap > worst {
				worst = overlap
			}
		})
	}
	p.samples = append(p.samples, worst)
}

func (p *Penetration) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	return floats.Max(p.samples)
}

// Last is the overlap found at the most recent tick.
func (p *Penetration) Last() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	return p.samples[len(p.samples)-1]
}

func (p *Penetration) Reset() { p.samples = p.samples[:0] }

// Containment tracks the worst distance any particle centre sits beyond
// its effective arena radius.
type Containment struct {
	name  string
	worst float64
}

func NewContainment() *Containment {
	return &Containment{name: "max_escape"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s *verlet.Solver, t float64) {
	R := s.ArenaRadius()
	s.Apply(func(q verlet.Particle) {
		limit := math.Max(R-q.Radius, 0)
		if d := r2.Norm(q.Position) - limit; d > c.worst {
			c.worst = d
		}
	})
}

func (c *Containment) Value() float64 { return c.worst }

func (c *Containment) Reset() { c.worst = 0 }
