package metrics

import (
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// KineticEnergy reports the mean per-particle kinetic energy at the last
// observed tick, assuming unit mass. Velocity is the last sub-step's
// displacement divided by the sub-step length.
type KineticEnergy struct {
	name    string
	dt      float64
	last    float64
	history []float64
}

// NewKineticEnergy expects the tick length passed to Solver.Update.
func NewKineticEnergy(dt float64) *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy", dt: dt}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(s *verlet.Solver, t float64) {
	if s.Len() == 0 || !(k.dt > 0) {
		k.last = 0
		k.history = append(k.history, 0)
		return
	}
	h := k.dt / float64(s.Config().SubSteps)

	energies := make([]float64, 0, s.Len())
	s.Apply(func(p verlet.Particle) {
		v := r2.Scale(1/h, p.Velocity())
		energies = append(energies, 0.5*r2.Dot(v, v))
	})
	k.last = stat.Mean(energies, nil)
	k.history = append(k.history, k.last)
}

func (k *KineticEnergy) Value() float64 { return k.last }

// History returns the per-tick values observed so far.
func (k *KineticEnergy) History() []float64 { return k.history }

func (k *KineticEnergy) Reset() {
	k.last = 0
	k.history = k.history[:0]
}
