package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/sim"
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	SpawnRandom  = "random"
	SpawnNoise   = "noise"
	SpawnEmitter = "emitter"
)

type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Contour ContourConfig `yaml:"contour"`
	Run     RunConfig     `yaml:"run"`
}

type SolverConfig struct {
	SubSteps    int     `yaml:"sub_steps"`
	GravityX    float64 `yaml:"gravity_x"`
	GravityY    float64 `yaml:"gravity_y"`
	ArenaRadius float64 `yaml:"arena_radius"`
	CellSize    float64 `yaml:"cell_size"`
}

type SpawnConfig struct {
	Kind      string  `yaml:"kind"`
	Seed      int64   `yaml:"seed"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
	Spread    float64 `yaml:"spread"`
}

type ContourConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	CellSize   float64 `yaml:"cell_size"`
	Smoothness float64 `yaml:"smoothness"`
	Workers    int     `yaml:"workers"`
	Every      int     `yaml:"every"`
}

type RunConfig struct {
	Dt           float64 `yaml:"dt"`
	Ticks        int     `yaml:"ticks"`
	SpawnPerTick int     `yaml:"spawn_per_tick"`
	MaxObjects   int     `yaml:"max_objects"`
	LogEvery     int     `yaml:"log_every"`
	Validate     bool    `yaml:"validate"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			SubSteps:    verlet.DefaultSubSteps,
			GravityX:    verlet.DefaultGravity.X,
			GravityY:    verlet.DefaultGravity.Y,
			ArenaRadius: verlet.DefaultArenaRadius,
			CellSize:    verlet.DefaultCellSize,
		},
		Spawn: SpawnConfig{
			Kind:      SpawnRandom,
			Seed:      1,
			MinRadius: 6,
			MaxRadius: 12,
		},
		Contour: ContourConfig{
			Enabled:    true,
			Width:      contour.DefaultWidth,
			Height:     contour.DefaultHeight,
			CellSize:   contour.DefaultCellSize,
			Smoothness: contour.DefaultSmoothness,
			Every:      60,
		},
		Run: RunConfig{
			Dt:           sim.DefaultStep,
			Ticks:        600,
			SpawnPerTick: 1,
			MaxObjects:   1500,
			LogEvery:     120,
			Validate:     true,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first out-of-range field.
func (c *Config) Validate() error {
	switch {
	case c.Solver.SubSteps < 1:
		return dynamo.Bounds("solver.sub_steps", c.Solver.SubSteps, ">= 1")
	case c.Solver.ArenaRadius < 0:
		return dynamo.Bounds("solver.arena_radius", c.Solver.ArenaRadius, ">= 0")
	case !(c.Solver.CellSize > 0):
		return dynamo.Bounds("solver.cell_size", c.Solver.CellSize, "> 0")
	case !(c.Spawn.MinRadius > 0):
		return dynamo.Bounds("spawn.min_radius", c.Spawn.MinRadius, "> 0")
	case c.Spawn.MaxRadius < c.Spawn.MinRadius:
		return dynamo.Bounds("spawn.max_radius", c.Spawn.MaxRadius, ">= min_radius")
	case c.Contour.Width < 1 || c.Contour.Height < 1:
		return dynamo.Bounds("contour.width/height", [2]int{c.Contour.Width, c.Contour.Height}, ">= 1")
	case !(c.Contour.CellSize > 0):
		return dynamo.Bounds("contour.cell_size", c.Contour.CellSize, "> 0")
	case c.Contour.Smoothness < 0:
		return dynamo.Bounds("contour.smoothness", c.Contour.Smoothness, ">= 0")
	case c.Contour.Every < 0:
		return dynamo.Bounds("contour.every", c.Contour.Every, ">= 0")
	case !(c.Run.Dt > 0):
		return dynamo.Bounds("run.dt", c.Run.Dt, "> 0")
	case c.Run.Ticks < 0:
		return dynamo.Bounds("run.ticks", c.Run.Ticks, ">= 0")
	case c.Run.SpawnPerTick < 0:
		return dynamo.Bounds("run.spawn_per_tick", c.Run.SpawnPerTick, ">= 0")
	case c.Run.MaxObjects < 0:
		return dynamo.Bounds("run.max_objects", c.Run.MaxObjects, ">= 0")
	}
	switch c.Spawn.Kind {
	case SpawnRandom, SpawnNoise, SpawnEmitter:
	default:
		return fmt.Errorf("%w: spawn.kind = %q, want one of random, noise, emitter",
			dynamo.ErrParameterBounds, c.Spawn.Kind)
	}
	return nil
}

func (c *Config) SolverConfig() verlet.Config {
	return verlet.Config{
		SubSteps:    c.Solver.SubSteps,
		Gravity:     r2.Vec{X: c.Solver.GravityX, Y: c.Solver.GravityY},
		ArenaRadius: c.Solver.ArenaRadius,
		CellSize:    c.Solver.CellSize,
	}
}

func (c *Config) ContourConfig() contour.Config {
	workers := c.Contour.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return contour.Config{
		Width:      c.Contour.Width,
		Height:     c.Contour.Height,
		CellSize:   c.Contour.CellSize,
		Smoothness: c.Contour.Smoothness,
		Workers:    workers,
	}
}

// Spawner builds the spawn policy named by Spawn.Kind. Unknown kinds fall
// back to the random policy.
func (c *Config) Spawner() verlet.Spawner {
	sp := c.Spawn
	switch sp.Kind {
	case SpawnNoise:
		s := verlet.NewNoiseSpawner(sp.Seed, sp.MinRadius, sp.MaxRadius)
		s.Origin = r2.Vec{X: sp.OriginX, Y: sp.OriginY}
		return s
	case SpawnEmitter:
		return &verlet.EmitterSpawner{
			Origin:   r2.Vec{X: sp.OriginX, Y: sp.OriginY},
			Velocity: r2.Vec{X: sp.VelocityX, Y: sp.VelocityY},
			Radius:   sp.MinRadius,
			Spread:   sp.Spread,
		}
	default:
		s := verlet.NewRandomSpawner(sp.Seed)
		s.MinRadius, s.MaxRadius = sp.MinRadius, sp.MaxRadius
		return s
	}
}

func (c *Config) RunConfig() sim.Config {
	every := 0
	if c.Contour.Enabled {
		every = c.Contour.Every
	}
	return sim.Config{
		Dt:            c.Run.Dt,
		Ticks:         c.Run.Ticks,
		SpawnPerTick:  c.Run.SpawnPerTick,
		MaxObjects:    c.Run.MaxObjects,
		ContourEvery:  every,
		LogEvery:      c.Run.LogEvery,
		ValidateState: c.Run.Validate,
	}
}
