package viz

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/sim"
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	smoothnessStep  = 5
)

type TickMsg time.Time

// Options configures the live view.
type Options struct {
	Dt           float64
	SpawnPerTick int
	MaxObjects   int
	Width        int
	Height       int
	Theme        string
	// OnRecord, if set, receives one record per fixed tick.
	OnRecord func(sim.Record) error
}

// Model drives a solver from wall-clock ticks and renders it as braille.
type Model struct {
	solver   *verlet.Solver
	field    *contour.Field
	clock    *sim.Clock
	opts     Options
	canvas   *Canvas
	view     dynamo.Affine
	theme    Theme
	running  bool
	spawning bool
	metaball bool
	showHelp bool

	tick       int
	t          float64
	last       time.Time
	collisions []float64
	polygons   int
	err        error
}

// NewModel builds the live view. field may be nil, which disables the
// metaball mode.
func NewModel(solver *verlet.Solver, field *contour.Field, opts Options) Model {
	if !(opts.Dt > 0) {
		opts.Dt = sim.DefaultStep
	}
	if opts.Width <= 0 {
		opts.Width = width
	}
	if opts.Height <= 0 {
		opts.Height = height
	}

	return Model{
		solver:     solver,
		field:      field,
		clock:      sim.NewClock(opts.Dt, sim.DefaultMaxFrame),
		opts:       opts,
		canvas:     NewCanvas(opts.Width, opts.Height),
		view:       fitView(opts.Width*2, opts.Height*4, solver.ArenaRadius()),
		theme:      GetTheme(opts.Theme),
		running:    true,
		spawning:   true,
		metaball:   field != nil,
		collisions: make([]float64, 0, historyCapacity),
	}
}

// fitView maps world space onto a cw x ch sub-pixel canvas with the arena
// centred and a small margin.
func fitView(cw, ch int, arena float64) dynamo.Affine {
	span := 2 * math.Max(arena, 1) * 1.05
	zoom := math.Min(float64(cw), float64(ch)) / span
	return dynamo.ScaleTranslate(zoom, r2.Vec{X: float64(cw) / 2, Y: float64(ch) / 2})
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.clock.Reset()
		case "a":
			m.spawning = !m.spawning
		case "c":
			m.solver.Clear()
			m.collisions = m.collisions[:0]
			m.polygons = 0
		case "m":
			m.metaball = !m.metaball && m.field != nil
		case "+", "=":
			m.adjustSmoothness(smoothnessStep)
		case "-", "_":
			m.adjustSmoothness(-smoothnessStep)
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		frame := m.clock.Step
		if !m.last.IsZero() {
			frame = now.Sub(m.last).Seconds()
		}
		m.last = now

		if m.running {
			for n := m.clock.Advance(frame); n > 0; n-- {
				m.step()
			}
		}
		m.draw()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) adjustSmoothness(delta float64) {
	if m.field == nil {
		return
	}
	m.field.SetSmoothness(m.field.Smoothness() + delta)
}

// step runs one fixed tick.
func (m *Model) step() {
	if m.spawning {
		for k := 0; k < m.opts.SpawnPerTick; k++ {
			if m.opts.MaxObjects > 0 && m.solver.Len() >= m.opts.MaxObjects {
				break
			}
			m.solver.AddObject()
		}
	}
	m.solver.Update(m.opts.Dt)
	m.t += m.opts.Dt

	st := m.solver.Stats()
	m.collisions = append(m.collisions, float64(st.Collisions))
	if len(m.collisions) > historyCapacity {
		m.collisions = m.collisions[1:]
	}

	if m.opts.OnRecord != nil {
		rec := sim.Record{
			Tick:          m.tick,
			Time:          m.t,
			Objects:       st.Objects,
			Collisions:    st.Collisions,
			AverageRadius: st.AverageRadius,
			Polygons:      m.polygons,
		}
		if err := m.opts.OnRecord(rec); err != nil {
			m.err = err
		}
	}
	m.tick++
}

// draw renders the arena and either the particles or the metaball fill.
func (m *Model) draw() {
	m.canvas.Clear()

	c := m.view.Apply(r2.Vec{})
	m.canvas.DrawCircle(round(c.X), round(c.Y), round(m.solver.ArenaRadius()*m.view.Scale()))

	if m.metaball && m.field != nil {
		m.field.NewFrame()
		m.solver.Apply(func(p verlet.Particle) {
			m.field.AddCircle(p.Position, p.Radius)
		})
		polys := m.field.Draw(m.view)
		m.polygons = len(polys)
		pts := make([]image.Point, 0, 6)
		for _, poly := range polys {
			pts = pts[:0]
			for _, v := range poly {
				pts = append(pts, image.Pt(round(v.X), round(v.Y)))
			}
			m.canvas.FillPolygon(pts)
		}
		return
	}

	m.polygons = 0
	scale := m.view.Scale()
	m.solver.Apply(func(p verlet.Particle) {
		q := m.view.Apply(p.Position)
		m.canvas.FillCircle(round(q.X), round(q.Y), round(p.Radius*scale))
	})
}

func round(v float64) int { return int(math.Round(v)) }

// Err returns the error that stopped the view, if any.
func (m Model) Err() error { return m.err }

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle(m.theme).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("GRANULAR") + "\n")

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.collisions) > 1 {
		chart := asciigraph.Plot(m.collisions, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Collisions"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	st := m.solver.Stats()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Objects") + valueStyle.Render(fmt.Sprintf("%d", st.Objects)) + "\n")
	if m.opts.MaxObjects > 0 {
		s.WriteString(labelStyle.Render("") + ProgressBar(float64(st.Objects)/float64(m.opts.MaxObjects), 20) + "\n")
	}
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", st.Collisions)) + "\n")
	s.WriteString(labelStyle.Render("Avg radius") + valueStyle.Render(fmt.Sprintf("%.2f", st.AverageRadius)) + "\n")
	s.WriteString(labelStyle.Render("Spawning") + valueStyle.Render(onOff(m.spawning)) + "\n")

	mode := "particles"
	if m.metaball {
		mode = fmt.Sprintf("metaball (%d quads)", m.polygons)
	}
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(mode) + "\n")
	if m.field != nil {
		s.WriteString(labelStyle.Render("Smoothness") + valueStyle.Render(fmt.Sprintf("%.0f", m.field.Smoothness())) + "\n")
	}
	s.WriteString(labelStyle.Render("Theme") + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.theme.Name) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause A:Spawn C:Clear\nM:Metaball +/-:Smooth\nT:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  A        - Toggle spawning          ║
║  C        - Remove all particles     ║
║  M        - Toggle metaball view     ║
║  + / -    - Adjust smoothness        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
