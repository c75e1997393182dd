package verlet

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParticle_AtRestStaysPut(t *testing.T) {
	p := NewParticle(r2.Vec{X: 3, Y: -7}, 5, color.RGBA{})

	for i := 0; i < 100; i++ {
		p.Integrate(1.0 / 60)
	}

	if p.Position != (r2.Vec{X: 3, Y: -7}) {
		t.Errorf("expected position unchanged, got %v", p.Position)
	}
	if p.Acceleration != (r2.Vec{}) {
		t.Errorf("expected zero acceleration, got %v", p.Acceleration)
	}
}

func TestParticle_ConstantAcceleration(t *testing.T) {
	g := r2.Vec{X: 3, Y: 982}
	h := 1.0 / 480
	steps := 50

	p := NewParticle(r2.Vec{}, 1, color.RGBA{})
	for i := 0; i < steps; i++ {
		p.Accelerate(g)
		p.Integrate(h)
	}

	// x_n = g h^2 n(n+1)/2 for the Verlet recurrence starting at rest.
	k := h * h * float64(steps*(steps+1)) / 2
	want := r2.Scale(k, g)
	if math.Abs(p.Position.X-want.X) > 1e-9 || math.Abs(p.Position.Y-want.Y) > 1e-9 {
		t.Errorf("position = %v, want %v", p.Position, want)
	}

	wantV := r2.Scale(h*h*float64(steps), g)
	v := p.Velocity()
	if math.Abs(v.X-wantV.X) > 1e-9 || math.Abs(v.Y-wantV.Y) > 1e-9 {
		t.Errorf("velocity = %v, want %v", v, wantV)
	}
}

func TestParticle_VelocityCarriesOver(t *testing.T) {
	p := NewParticle(r2.Vec{}, 1, color.RGBA{})
	p.SetVelocity(r2.Vec{X: 2, Y: 0})

	p.Integrate(0.01)
	p.Integrate(0.01)

	if p.Position != (r2.Vec{X: 4, Y: 0}) {
		t.Errorf("expected (4, 0), got %v", p.Position)
	}
	if p.Previous != (r2.Vec{X: 2, Y: 0}) {
		t.Errorf("expected previous (2, 0), got %v", p.Previous)
	}
}

func TestParticle_Bounds(t *testing.T) {
	p := NewParticle(r2.Vec{X: 10, Y: 20}, 5, color.RGBA{})
	b := p.Bounds()
	if b.Min != (r2.Vec{X: 5, Y: 15}) || b.Max != (r2.Vec{X: 15, Y: 25}) {
		t.Errorf("unexpected bounds %v", b)
	}
}
