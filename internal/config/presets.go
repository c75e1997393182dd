package config

import "sort"

func preset(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": preset(func(c *Config) {
		c.Spawn.MinRadius, c.Spawn.MaxRadius = 4, 8
		c.Run.SpawnPerTick = 4
		c.Run.MaxObjects = 3000
		c.Run.Ticks = 1200
		c.Solver.CellSize = 25
	}),
	"pour": preset(func(c *Config) {
		c.Spawn.Kind = SpawnEmitter
		c.Spawn.MinRadius, c.Spawn.MaxRadius = 7, 7
		c.Spawn.OriginX, c.Spawn.OriginY = -200, -300
		c.Spawn.VelocityX, c.Spawn.VelocityY = 3, 0
		c.Spawn.Spread = 3
		c.Run.SpawnPerTick = 2
		c.Run.MaxObjects = 1200
		c.Run.Ticks = 900
	}),
	"fine": preset(func(c *Config) {
		c.Spawn.Kind = SpawnNoise
		c.Spawn.MinRadius, c.Spawn.MaxRadius = 5, 14
		c.Spawn.OriginY = -200
		c.Contour.Width, c.Contour.Height = 200, 200
		c.Contour.CellSize = 5
		c.Contour.Smoothness = 30
		c.Contour.Every = 30
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
