package sim

import (
	"time"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/verlet"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(s *verlet.Solver, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(s *verlet.Solver, tick int, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *verlet.Solver, tick int, t float64)

func (f ObserverFunc) OnTick(s *verlet.Solver, tick int, t float64) { f(s, tick, t) }

type Config struct {
	Dt            float64
	Ticks         int
	SpawnPerTick  int
	MaxObjects    int // 0 = unlimited
	ContourEvery  int // 0 = never
	LogEvery      int // 0 = never
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            DefaultStep,
		Ticks:         600,
		SpawnPerTick:  1,
		MaxObjects:    1500,
		ContourEvery:  60,
		LogEvery:      120,
		ValidateState: true,
	}
}

// Record is the per-tick telemetry row.
type Record struct {
	Tick          int     `csv:"tick"`
	Time          float64 `csv:"time"`
	Objects       int     `csv:"objects"`
	Collisions    int     `csv:"collisions"`
	AverageRadius float64 `csv:"avg_radius"`
	Polygons      int     `csv:"polygons"`
}

type Result struct {
	Records   []Record
	Metrics   map[string]float64
	Frame     []contour.Polygon
	Particles []verlet.Particle
	View      dynamo.Affine
	Elapsed   time.Duration
	Errors    []error
}

// Collisions returns the per-tick collision series, for plotting.
func (r *Result) Collisions() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = float64(rec.Collisions)
	}
	return out
}

// Objects returns the per-tick object count series.
func (r *Result) Objects() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = float64(rec.Objects)
	}
	return out
}
