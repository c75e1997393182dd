package verlet_test

import (
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/granular/internal/verlet"
)

var _ = Describe("Solver", func() {
	var s *verlet.Solver

	BeforeEach(func() {
		s = verlet.New(verlet.DefaultConfig(), verlet.NewRandomSpawner(3))
	})

	Describe("Update", func() {
		It("is a no-op on an empty solver", func() {
			s.Update(1.0 / 60)
			Expect(s.Stats()).To(Equal(verlet.Stats{}))
		})

		It("separates a heavily overlapping pile", func() {
			for i := 0; i < 40; i++ {
				s.AddParticle(verlet.NewParticle(r2.Vec{X: float64(i%5) * 0.5, Y: float64(i/5) * 0.5}, 8, color.RGBA{}))
			}
			for i := 0; i < 240; i++ {
				s.Update(1.0 / 60)
			}

			var worst float64
			ps := collect(s)
			for i := range ps {
				for j := i + 1; j < len(ps); j++ {
					d := r2.Norm(r2.Sub(ps[i].Position, ps[j].Position))
					worst = math.Max(worst, ps[i].Radius+ps[j].Radius-d)
				}
			}
			Expect(worst).To(BeNumerically("<", 8.0))
		})

		It("keeps gravity pulling toward +y", func() {
			s.AddParticle(verlet.NewParticle(r2.Vec{}, 5, color.RGBA{}))
			s.Update(1.0 / 60)

			p, ok := s.Particle(0)
			Expect(ok).To(BeTrue())
			Expect(p.Position.Y).To(BeNumerically(">", 0))
			Expect(p.Position.X).To(BeNumerically("==", 0))
		})

		It("pushes an overlapping pair apart", func() {
			s.AddParticle(verlet.NewParticle(r2.Vec{X: 0, Y: 0}, 10, color.RGBA{}))
			s.AddParticle(verlet.NewParticle(r2.Vec{X: 5, Y: 0}, 10, color.RGBA{}))
			s.Update(1.0 / 60)

			a, _ := s.Particle(0)
			b, _ := s.Particle(1)
			Expect(r2.Norm(r2.Sub(a.Position, b.Position))).To(BeNumerically(">=", 20-1e-9))
			Expect(a.Position.Y).To(BeNumerically("~", b.Position.Y, 1e-9))
			Expect(s.Stats().Objects).To(Equal(2))
		})
	})

	Describe("Apply", func() {
		It("visits in insertion order", func() {
			for i := 0; i < 5; i++ {
				s.AddParticle(verlet.NewParticle(r2.Vec{X: float64(i) * 100}, float64(i+1), color.RGBA{}))
			}
			var radii []float64
			s.Apply(func(p verlet.Particle) { radii = append(radii, p.Radius) })
			Expect(radii).To(Equal([]float64{1, 2, 3, 4, 5}))
		})
	})
})

var _ = Describe("Spawners", func() {
	It("draws random radii from the skewed range", func() {
		sp := verlet.NewRandomSpawner(11)
		for i := 0; i < 500; i++ {
			p := sp.Spawn(i)
			Expect(p.Radius).To(BeNumerically(">=", 6))
			Expect(p.Radius).To(BeNumerically("<=", 12))
			Expect(p.Position.X).To(BeNumerically(">=", 0))
			Expect(p.Position.X).To(BeNumerically("<", 1))
			Expect(p.Velocity()).To(Equal(r2.Vec{}))
			Expect(p.Color.A).To(Equal(uint8(255)))
		}
	})

	It("is deterministic for a seed", func() {
		a, b := verlet.NewRandomSpawner(5), verlet.NewRandomSpawner(5)
		for i := 0; i < 20; i++ {
			Expect(a.Spawn(i)).To(Equal(b.Spawn(i)))
		}
	})

	It("keeps noise radii inside bounds", func() {
		sp := verlet.NewNoiseSpawner(9, 4, 10)
		for i := 0; i < 500; i++ {
			p := sp.Spawn(i)
			Expect(p.Radius).To(BeNumerically(">=", 4))
			Expect(p.Radius).To(BeNumerically("<=", 10))
			Expect(math.Abs(p.Position.X)).To(BeNumerically("<=", sp.Jitter))
		}
	})

	It("launches emitter grains with the configured velocity", func() {
		sp := &verlet.EmitterSpawner{
			Origin:   r2.Vec{X: -200, Y: -300},
			Velocity: r2.Vec{X: 3, Y: 0},
			Radius:   5,
			Spread:   2,
		}
		p := sp.Spawn(0)
		Expect(p.Velocity().X).To(BeNumerically("~", 3, 1e-12))
		Expect(p.Velocity().Y).To(BeNumerically("~", 0, 1e-12))
		Expect(p.Radius).To(Equal(5.0))
		Expect(sp.Spawn(1).Position).NotTo(Equal(p.Position))
	})

	It("is used by AddObject", func() {
		calls := 0
		s := verlet.New(verlet.DefaultConfig(), verlet.SpawnerFunc(func(id int) verlet.Particle {
			calls++
			return verlet.NewParticle(r2.Vec{X: float64(id)}, 2, color.RGBA{})
		}))
		s.AddObject()
		s.AddObject()
		Expect(calls).To(Equal(2))
		p, _ := s.Particle(1)
		Expect(p.Position.X).To(Equal(1.0))
	})
})

func collect(s *verlet.Solver) []verlet.Particle {
	out := make([]verlet.Particle, 0, s.Len())
	s.Apply(func(p verlet.Particle) { out = append(out, p) })
	return out
}
