package export

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/sim"
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestFrameToSVG(t *testing.T) {
	frame := []contour.Polygon{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		{{X: 1, Y: 1}, {X: 2, Y: 2}}, // degenerate, skipped
	}
	particles := []verlet.Particle{
		verlet.NewParticle(r2.Vec{X: 5, Y: 5}, 4, color.RGBA{R: 255, A: 255}),
	}
	view := dynamo.ScaleTranslate(2, r2.Vec{X: 100, Y: 100})

	svg := FrameToSVG(frame, particles, view, 200, 200, 40)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing svg envelope")
	}
	if got := strings.Count(svg, "<polygon"); got != 1 {
		t.Errorf("polygons = %d, want 1", got)
	}
	if !strings.Contains(svg, `cx="110.0" cy="110.0" r="8.0" fill="#ff0000"`) {
		t.Errorf("particle not mapped through view:\n%s", svg)
	}
	if !strings.Contains(svg, `cx="100.0" cy="100.0" r="80.0" fill="none"`) {
		t.Errorf("arena not mapped through view:\n%s", svg)
	}
}

func TestFrameToSVGEmpty(t *testing.T) {
	svg := FrameToSVG(nil, nil, dynamo.Identity(), 10, 10, 0)
	if strings.Contains(svg, "<circle") || strings.Contains(svg, "<polygon") {
		t.Error("empty frame should only draw the background")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should produce no plot")
	}
	svg := SeriesToSVG([]float64{0, 5, 5, 2}, 100, 50, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke colour missing")
	}
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("segments = %d, want 3", got)
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	records := []sim.Record{
		{Tick: 0, Time: 0.5, Objects: 1, Collisions: 0, AverageRadius: 6},
		{Tick: 1, Time: 1, Objects: 2, Collisions: 1, AverageRadius: 7},
	}
	if err := WriteRecordsCSV(&buf, records); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "tick,time,objects,collisions,avg_radius,polygons" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1,1,2,1,7,") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestRecordStream(t *testing.T) {
	var buf bytes.Buffer
	s := NewRecordStream(&buf)

	if err := s.Write(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("empty write should not emit a header")
	}
	for i := 0; i < 3; i++ {
		if err := s.Write(sim.Record{Tick: i}); err != nil {
			t.Fatal(err)
		}
	}

	out := buf.String()
	if got := strings.Count(out, "tick,"); got != 1 {
		t.Errorf("headers = %d, want 1", got)
	}
	if s.Rows() != 3 {
		t.Errorf("rows = %d", s.Rows())
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 4 {
		t.Errorf("lines = %d, want 4", len(lines))
	}
}
