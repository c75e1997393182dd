package verlet

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is one simulated disc. Velocity is implicit: Position - Previous.
type Particle struct {
	Position     r2.Vec
	Previous     r2.Vec
	Acceleration r2.Vec
	Radius       float64
	Color        color.RGBA
}

// NewParticle returns a particle at rest at pos.
func NewParticle(pos r2.Vec, radius float64, c color.RGBA) Particle {
	return Particle{
		Position: pos,
		Previous: pos,
		Radius:   radius,
		Color:    c,
	}
}

// Accelerate adds a to the acceleration accumulated for the current sub-step.
func (p *Particle) Accelerate(a r2.Vec) {
	p.Acceleration = r2.Add(p.Acceleration, a)
}

// Velocity returns the displacement over the last step.
func (p *Particle) Velocity() r2.Vec {
	return r2.Sub(p.Position, p.Previous)
}

// SetVelocity rewrites Previous so the next step moves by v.
func (p *Particle) SetVelocity(v r2.Vec) {
	p.Previous = r2.Sub(p.Position, v)
}

// Integrate performs one Störmer-Verlet step of size dt and clears the
// accumulated acceleration. Previous must be captured before Position moves.
func (p *Particle) Integrate(dt float64) {
	v := p.Velocity()
	p.Previous = p.Position
	p.Position = r2.Add(p.Position, r2.Add(v, r2.Scale(dt*dt, p.Acceleration)))
	p.Acceleration = r2.Vec{}
}

// Bounds returns the axis-aligned bounding box of the disc.
func (p *Particle) Bounds() r2.Box {
	r := r2.Vec{X: p.Radius, Y: p.Radius}
	return r2.Box{Min: r2.Sub(p.Position, r), Max: r2.Add(p.Position, r)}
}
