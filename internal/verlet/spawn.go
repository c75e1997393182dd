package verlet

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spawner decides the initial state of particles created by AddObject.
// id is the index the new particle will receive.
type Spawner interface {
	Spawn(id int) Particle
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(id int) Particle

func (f SpawnerFunc) Spawn(id int) Particle { return f(id) }

// RandomSpawner drops particles near the origin with a radius skewed
// toward MinRadius: MinRadius + u^4 * (MaxRadius - MinRadius).
type RandomSpawner struct {
	MinRadius, MaxRadius float64
	rng                  *rand.Rand
}

func NewRandomSpawner(seed int64) *RandomSpawner {
	return &RandomSpawner{
		MinRadius: 6,
		MaxRadius: 12,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (s *RandomSpawner) Spawn(int) Particle {
	pos := r2.Vec{X: s.rng.Float64(), Y: s.rng.Float64()}
	radius := s.MinRadius + math.Pow(s.rng.Float64(), 4)*(s.MaxRadius-s.MinRadius)
	c := color.RGBA{
		R: uint8(s.rng.Intn(255)),
		G: uint8(s.rng.Intn(255)),
		B: uint8(s.rng.Intn(255)),
		A: 255,
	}
	return NewParticle(pos, radius, c)
}

// NoiseSpawner varies the radius smoothly with the spawn index using 1-D
// Perlin noise, so consecutive grains come in runs of similar size.
type NoiseSpawner struct {
	MinRadius, MaxRadius float64
	Origin               r2.Vec
	Jitter               float64
	Frequency            float64
	noise                *perlin.Perlin
	rng                  *rand.Rand
}

func NewNoiseSpawner(seed int64, minRadius, maxRadius float64) *NoiseSpawner {
	return &NoiseSpawner{
		MinRadius: minRadius,
		MaxRadius: maxRadius,
		Jitter:    1,
		Frequency: 0.05,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (s *NoiseSpawner) Spawn(id int) Particle {
	n := s.noise.Noise1D(float64(id) * s.Frequency)
	u := math.Min(math.Max(0.5+n, 0), 1)
	radius := s.MinRadius + u*(s.MaxRadius-s.MinRadius)

	pos := r2.Add(s.Origin, r2.Vec{
		X: (s.rng.Float64()*2 - 1) * s.Jitter,
		Y: (s.rng.Float64()*2 - 1) * s.Jitter,
	})
	return NewParticle(pos, radius, hue(u))
}

// EmitterSpawner launches fixed-size grains from one point with a fixed
// per-step displacement, alternating a small sideways offset so grains
// never start coincident.
type EmitterSpawner struct {
	Origin   r2.Vec
	Velocity r2.Vec
	Radius   float64
	Spread   float64
}

func (s *EmitterSpawner) Spawn(id int) Particle {
	offset := s.Spread * float64(id%5-2)
	perp := r2.Vec{X: -s.Velocity.Y, Y: s.Velocity.X}
	if n := r2.Norm(perp); n > 0 {
		perp = r2.Scale(offset/n, perp)
	} else {
		perp = r2.Vec{X: offset}
	}
	p := NewParticle(r2.Add(s.Origin, perp), s.Radius, hue(float64(id%64)/64))
	p.SetVelocity(s.Velocity)
	return p
}

// hue maps u in [0, 1] onto a fully saturated colour wheel.
func hue(u float64) color.RGBA {
	h := math.Mod(u, 1) * 6
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}
	return color.RGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 255}
}
