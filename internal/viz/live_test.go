package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/sim"
	"github.com/san-kum/granular/internal/verlet"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(opts Options) Model {
	s := verlet.New(verlet.DefaultConfig(), verlet.NewRandomSpawner(1))
	f := contour.NewField(contour.Config{})
	return NewModel(s, f, opts)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelTickSpawns(t *testing.T) {
	m := newTestModel(Options{SpawnPerTick: 2, MaxObjects: 5})
	start := time.Unix(0, 0)

	m = send(m, TickMsg(start))
	if m.solver.Len() != 2 {
		t.Fatalf("objects after first tick = %d, want 2", m.solver.Len())
	}

	m = send(m, TickMsg(start.Add(100*time.Millisecond)))
	if m.solver.Len() != 5 {
		t.Errorf("objects = %d, want capped at 5", m.solver.Len())
	}
	if m.tick < 5 {
		t.Errorf("ticks = %d, want at least 5", m.tick)
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(Options{SpawnPerTick: 1})
	start := time.Unix(0, 0)

	m = send(m, key(" "), TickMsg(start))
	if m.running || m.solver.Len() != 0 {
		t.Error("paused model should not step")
	}

	m = send(m, key(" "), key("a"), TickMsg(start.Add(time.Second/60)))
	if m.spawning || m.solver.Len() != 0 {
		t.Error("spawning disabled, expected no objects")
	}

	m = send(m, key("a"), TickMsg(start.Add(time.Second/30)))
	if m.solver.Len() == 0 {
		t.Fatal("expected objects after re-enabling spawn")
	}

	m = send(m, key("c"))
	if m.solver.Len() != 0 || len(m.collisions) != 0 {
		t.Error("clear should remove all particles")
	}

	k := m.field.Smoothness()
	m = send(m, key("+"), key("+"), key("-"))
	if m.field.Smoothness() != k+smoothnessStep {
		t.Errorf("smoothness = %v, want %v", m.field.Smoothness(), k+smoothnessStep)
	}

	before := m.metaball
	m = send(m, key("m"))
	if m.metaball == before {
		t.Error("m should toggle metaball view")
	}

	name := m.theme.Name
	m = send(m, key("t"))
	if m.theme.Name == name {
		t.Error("t should cycle the theme")
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestModelWithoutField(t *testing.T) {
	s := verlet.New(verlet.DefaultConfig(), nil)
	m := NewModel(s, nil, Options{})
	m = send(m, key("m"), key("+"))
	if m.metaball {
		t.Error("metaball view needs a field")
	}
	if !strings.Contains(m.View(), "particles") {
		t.Error("view should report particle mode")
	}
}

func TestModelDraws(t *testing.T) {
	m := newTestModel(Options{SpawnPerTick: 5, MaxObjects: 20})
	start := time.Unix(0, 0)
	m = send(m, TickMsg(start), TickMsg(start.Add(200*time.Millisecond)))

	if m.canvas.Count() == 0 {
		t.Fatal("canvas is empty")
	}
	if m.polygons == 0 {
		t.Error("metaball mode should produce polygons")
	}
	view := m.View()
	for _, want := range []string{"GRANULAR", "Objects", "Collisions", "metaball"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelRecords(t *testing.T) {
	var got []sim.Record
	m := newTestModel(Options{SpawnPerTick: 1, OnRecord: func(r sim.Record) error {
		got = append(got, r)
		return nil
	}})
	start := time.Unix(0, 0)
	m = send(m, TickMsg(start), TickMsg(start.Add(50*time.Millisecond)))

	if len(got) != m.tick {
		t.Fatalf("records = %d, ticks = %d", len(got), m.tick)
	}
	for i, r := range got {
		if r.Tick != i {
			t.Errorf("record %d has tick %d", i, r.Tick)
		}
	}
}

func TestModelRecordError(t *testing.T) {
	boom := errors.New("disk full")
	m := newTestModel(Options{OnRecord: func(sim.Record) error { return boom }})
	next, cmd := m.Update(TickMsg(time.Unix(0, 0)))
	if !errors.Is(next.(Model).Err(), boom) {
		t.Errorf("err = %v", next.(Model).Err())
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestFitView(t *testing.T) {
	v := fitView(160, 96, 450)
	c := v.Apply(verlet.Particle{}.Position)
	if c.X != 80 || c.Y != 48 {
		t.Errorf("centre = %v", c)
	}
	if edge := 450 * v.Scale(); edge > 48 {
		t.Errorf("arena radius %v does not fit", edge)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty = %q", got)
	}
	got := []rune(Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 4))
	if len(got) != 4 || got[len(got)-1] != '█' || got[0] != '▁' {
		t.Errorf("sparkline = %q", string(got))
	}
}
