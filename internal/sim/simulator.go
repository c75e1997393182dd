package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/verlet"
)

// Runner drives a solver at a fixed tick and streams its particles into
// an optional contour field.
type Runner struct {
	solver    *verlet.Solver
	field     *contour.Field
	view      dynamo.Affine
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

// New creates a runner. field may be nil to skip contouring.
func New(solver *verlet.Solver, field *contour.Field) *Runner {
	return &Runner{
		solver:    solver,
		field:     field,
		view:      dynamo.Identity(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    slog.Default(),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// SetView sets the transform applied to contour output.
func (r *Runner) SetView(view dynamo.Affine) { r.view = view }

func (r *Runner) Solver() *verlet.Solver { return r.solver }

func (r *Runner) Field() *contour.Field { return r.field }

// Run executes cfg.Ticks fixed ticks. On cancellation the partial result
// is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Records: make([]Record, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
		View:    r.view,
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.logger.Info("run started",
		"ticks", cfg.Ticks,
		"dt", cfg.Dt,
		"spawn_per_tick", cfg.SpawnPerTick,
		"max_objects", cfg.MaxObjects,
		"sub_steps", r.solver.Config().SubSteps,
	)

	start := time.Now()
	t := 0.0
	var err error

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		for k := 0; k < cfg.SpawnPerTick; k++ {
			if cfg.MaxObjects > 0 && r.solver.Len() >= cfg.MaxObjects {
				break
			}
			r.solver.AddObject()
		}

		r.solver.Update(cfg.Dt)
		t += cfg.Dt

		for _, m := range r.metrics {
			m.Observe(r.solver, t)
		}
		for _, obs := range r.observers {
			obs.OnTick(r.solver, tick, t)
		}

		st := r.solver.Stats()
		rec := Record{
			Tick:          tick,
			Time:          t,
			Objects:       st.Objects,
			Collisions:    st.Collisions,
			AverageRadius: st.AverageRadius,
		}

		if r.field != nil && cfg.ContourEvery > 0 && (tick+1)%cfg.ContourEvery == 0 {
			result.Frame = r.Contour()
			rec.Polygons = len(result.Frame)
		}
		result.Records = append(result.Records, rec)

		if cfg.ValidateState {
			if bad := firstInvalid(r.solver); bad >= 0 {
				result.Errors = append(result.Errors, dynamo.SimError{
					Time:    t,
					Tick:    tick,
					Message: fmt.Sprintf("particle %d has non-finite state", bad),
					Wrapped: dynamo.ErrInvalidState,
				})
				r.logger.Warn("invalid state", "tick", tick, "particle", bad)
				break
			}
		}

		if cfg.LogEvery > 0 && (tick+1)%cfg.LogEvery == 0 {
			r.logger.Debug("progress",
				"tick", tick+1,
				"objects", st.Objects,
				"collisions", st.Collisions,
				"avg_radius", st.AverageRadius,
			)
		}
	}

	if r.field != nil && result.Frame == nil && cfg.ContourEvery > 0 {
		result.Frame = r.Contour()
	}

	result.Particles = make([]verlet.Particle, 0, r.solver.Len())
	r.solver.Apply(func(p verlet.Particle) { result.Particles = append(result.Particles, p) })

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Elapsed = time.Since(start)

	r.logger.Info("run finished",
		"ticks", len(result.Records),
		"objects", r.solver.Len(),
		"polygons", len(result.Frame),
		"elapsed", result.Elapsed,
	)

	return result, err
}

// Contour streams the current particles into the field and returns the
// outline in view space. It returns nil when the runner has no field.
func (r *Runner) Contour() []contour.Polygon {
	if r.field == nil {
		return nil
	}
	r.field.NewFrame()
	r.solver.Apply(func(p verlet.Particle) {
		r.field.AddCircle(p.Position, p.Radius)
	})
	return r.field.Draw(r.view)
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return dynamo.Bounds("dt", cfg.Dt, "> 0")
	}
	if cfg.Ticks < 0 {
		return dynamo.Bounds("ticks", cfg.Ticks, ">= 0")
	}
	if cfg.SpawnPerTick < 0 {
		return dynamo.Bounds("spawn_per_tick", cfg.SpawnPerTick, ">= 0")
	}
	if cfg.MaxObjects < 0 {
		return dynamo.Bounds("max_objects", cfg.MaxObjects, ">= 0")
	}
	return nil
}

func firstInvalid(s *verlet.Solver) int {
	bad, id := -1, 0
	s.Apply(func(p verlet.Particle) {
		if bad < 0 && !(dynamo.IsFinite(p.Position) && dynamo.IsFinite(p.Previous)) {
			bad = id
		}
		id++
	})
	return bad
}
