package main

import (
	"fmt"

	"github.com/san-kum/granular/internal/config"
	"github.com/spf13/cobra"
)

// loadConfig resolves the effective configuration: flags override the
// config file, which overrides the preset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("spawn") {
		cfg.Run.SpawnPerTick = spawnPerTick
	}
	if flags.Changed("max") {
		cfg.Run.MaxObjects = maxObjects
	}
	if flags.Changed("seed") {
		cfg.Spawn.Seed = seed
	}
	if flags.Changed("spawner") {
		cfg.Spawn.Kind = spawner
	}
	if flags.Changed("arena") {
		cfg.Solver.ArenaRadius = arenaRadius
	}
	if flags.Changed("substeps") {
		cfg.Solver.SubSteps = subSteps
	}
	if flags.Changed("cell") {
		cfg.Solver.CellSize = cellSize
	}
	if flags.Changed("smoothness") {
		cfg.Contour.Smoothness = smoothness
	}
	if flags.Changed("no-contour") {
		cfg.Contour.Enabled = !noContour
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
