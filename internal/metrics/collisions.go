package metrics

import (
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Collisions is the mean per-sub-step contact count over observed ticks.
type Collisions struct {
	name    string
	samples []float64
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(s *verlet.Solver, t float64) {
	c.samples = append(c.samples, float64(s.Stats().Collisions))
}

func (c *Collisions) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return stat.Mean(c.samples, nil)
}

// Peak is the largest per-tick count seen.
func (c *Collisions) Peak() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return floats.Max(c.samples)
}

func (c *Collisions) Reset() { c.samples = c.samples[:0] }
