package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/granular/internal/config"
	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/export"
	"github.com/san-kum/granular/internal/metrics"
	"github.com/san-kum/granular/internal/sim"
	"github.com/san-kum/granular/internal/verlet"
	"github.com/san-kum/granular/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

var (
	logJSON  bool
	logLevel string

	configFile string
	preset     string

	dt           float64
	ticks        int
	spawnPerTick int
	maxObjects   int
	seed         int64
	spawner      string
	arenaRadius  float64
	subSteps     int
	cellSize     float64
	smoothness   float64
	noContour    bool

	csvPath     string
	svgPath     string
	plotSVGPath string
	svgSize     int

	theme string

	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "granular",
		Short: "verlet granular solver with metaball contouring",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logJSON, logLevel)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and plot the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write per-tick records to CSV")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame to SVG")
	runCmd.Flags().StringVar(&plotSVGPath, "plot-svg", "", "write the collision series to SVG")
	runCmd.Flags().IntVar(&svgSize, "svg-size", 800, "SVG edge length in pixels")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&csvPath, "csv", "", "stream per-tick records to CSV")
	liveCmd.Flags().StringVar(&theme, "theme", "sand", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solver and contourer",
		Args:  cobra.NoArgs,
		RunE:  benchSolver,
	}
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or write a configuration file",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from preset")
	configCmd.Flags().StringVar(&outPath, "out", "", "write to file instead of stdout")

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", sim.DefaultStep, "tick length in seconds")
	cmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks")
	cmd.Flags().IntVar(&spawnPerTick, "spawn", 1, "objects spawned per tick")
	cmd.Flags().IntVar(&maxObjects, "max", 1500, "object cap (0 = unlimited)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&spawner, "spawner", config.SpawnRandom, "spawn policy (random, noise, emitter)")
	cmd.Flags().Float64Var(&arenaRadius, "arena", verlet.DefaultArenaRadius, "arena radius")
	cmd.Flags().IntVar(&subSteps, "substeps", verlet.DefaultSubSteps, "solver sub-steps per tick")
	cmd.Flags().Float64Var(&cellSize, "cell", verlet.DefaultCellSize, "partition cell size")
	cmd.Flags().Float64Var(&smoothness, "smoothness", contour.DefaultSmoothness, "metaball smoothness")
	cmd.Flags().BoolVar(&noContour, "no-contour", false, "disable contouring")
}

func setupLogging(json bool, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	solver := verlet.New(cfg.SolverConfig(), cfg.Spawner())
	var field *contour.Field
	if cfg.Contour.Enabled {
		field = contour.NewField(cfg.ContourConfig())
	}

	runner := sim.New(solver, field)
	view := svgView(svgSize, cfg.Solver.ArenaRadius)
	runner.SetView(view)
	runner.AddMetric(metrics.NewCollisions())
	runner.AddMetric(metrics.NewKineticEnergy(cfg.Run.Dt))
	runner.AddMetric(metrics.NewPenetration())
	runner.AddMetric(metrics.NewContainment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := runner.Run(ctx, cfg.RunConfig())
	if result == nil {
		return err
	}
	if err != nil {
		slog.Warn("run interrupted", "error", err, "ticks", len(result.Records))
	}

	fmt.Printf("completed %d ticks in %v\n", len(result.Records), result.Elapsed)
	fmt.Printf("objects: %d\n", solver.Len())
	fmt.Printf("polygons: %d\n\n", len(result.Frame))

	if len(result.Records) > 1 {
		fmt.Println(asciigraph.Plot(result.Objects(),
			asciigraph.Height(8), asciigraph.Width(80), asciigraph.Caption("objects")))
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Collisions(),
			asciigraph.Height(8), asciigraph.Width(80), asciigraph.Caption("collisions per sub-step")))
		fmt.Println()
	}

	fmt.Println("metrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"collisions", "kinetic_energy", "max_penetration", "max_escape"} {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}

	if csvPath != "" {
		if err := writeFile(csvPath, func(f *os.File) error {
			return export.WriteRecordsCSV(f, result.Records)
		}); err != nil {
			return err
		}
		slog.Info("wrote records", "path", csvPath, "rows", len(result.Records))
	}
	if svgPath != "" {
		svg := export.FrameToSVG(result.Frame, result.Particles, view, svgSize, svgSize, cfg.Solver.ArenaRadius)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		slog.Info("wrote frame", "path", svgPath)
	}
	if plotSVGPath != "" {
		svg := export.SeriesToSVG(result.Collisions(), svgSize, svgSize/2, "#00ff00")
		if err := os.WriteFile(plotSVGPath, []byte(svg), 0644); err != nil {
			return err
		}
		slog.Info("wrote plot", "path", plotSVGPath)
	}

	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	solver := verlet.New(cfg.SolverConfig(), cfg.Spawner())
	var field *contour.Field
	if cfg.Contour.Enabled {
		field = contour.NewField(cfg.ContourConfig())
	}

	opts := viz.Options{
		Dt:           cfg.Run.Dt,
		SpawnPerTick: cfg.Run.SpawnPerTick,
		MaxObjects:   cfg.Run.MaxObjects,
		Theme:        theme,
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		stream := export.NewRecordStream(f)
		opts.OnRecord = func(r sim.Record) error { return stream.Write(r) }
	}

	// the TUI owns the terminal; keep logs out of it
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	p := tea.NewProgram(viz.NewModel(solver, field, opts))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	counts := []int{250, 500, 1000, 2000}
	const frames = 60

	fmt.Println("benchmarking solver and contourer")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OBJECTS\tUPDATE\tDRAW\tCOLLISIONS\tPOLYGONS\tFRAMES/SEC")

	for _, n := range counts {
		cfg := verlet.DefaultConfig()
		solver := verlet.New(cfg, verlet.NewRandomSpawner(seed))
		// spread the pile so the first frames are not one overlapping blob
		for solver.Len() < n {
			solver.AddObject()
			solver.Update(sim.DefaultStep / 4)
		}
		field := contour.NewField(contour.Config{})

		var update, draw time.Duration
		collisions, polygons := 0, 0
		for i := 0; i < frames; i++ {
			start := time.Now()
			solver.Update(sim.DefaultStep)
			update += time.Since(start)
			collisions += solver.Stats().Collisions

			start = time.Now()
			field.NewFrame()
			solver.Apply(func(p verlet.Particle) { field.AddCircle(p.Position, p.Radius) })
			polygons = len(field.Draw(dynamo.Identity()))
			draw += time.Since(start)
		}

		perFrame := (update + draw) / frames
		fmt.Fprintf(w, "%d\t%v\t%v\t%d\t%d\t%.0f\n",
			n, update/frames, draw/frames, collisions/frames, polygons, 1/perFrame.Seconds())
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPAWNER\tRADIUS\tSPAWN/TICK\tMAX\tCONTOUR")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.0f-%.0f\t%d\t%d\t%dx%d @ %.0f\n",
			name, c.Spawn.Kind, c.Spawn.MinRadius, c.Spawn.MaxRadius,
			c.Run.SpawnPerTick, c.Run.MaxObjects,
			c.Contour.Width, c.Contour.Height, c.Contour.CellSize)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if outPath != "" {
		return config.Save(outPath, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// svgView maps world space onto a size x size image with the arena
// centred.
func svgView(size int, arena float64) dynamo.Affine {
	half := float64(size) / 2
	zoom := 1.0
	if arena > 0 {
		zoom = half / (arena * 1.05)
	}
	return dynamo.ScaleTranslate(zoom, r2.Vec{X: half, Y: half})
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
