package viz

import (
	"image"
	"strings"
	"testing"
)

func TestCanvasSetClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)  // ignored
	c.Set(100, 0) // ignored
	if c.Count() != 2 {
		t.Fatalf("count = %d, want 2", c.Count())
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell (0,0) = %U", c.Grid[0][0])
	}

	c.Set(0, 0)
	if c.Count() != 2 {
		t.Errorf("setting a pixel twice changed the count to %d", c.Count())
	}

	c.Clear()
	if c.Count() != 0 {
		t.Error("clear left pixels set")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("cols = %d", len([]rune(lines[0])))
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 2, 0, 2, 7, 8},
		{"diagonal", 0, 0, 5, 5, 6},
		{"point", 3, 3, 3, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1)
			if got := c.Count(); got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)
	for _, p := range []image.Point{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		col, row := p.X/2, p.Y/4
		if c.Grid[row][col]&rune(pixelMap[p.Y%4][p.X%2]) == 0 {
			t.Errorf("extreme point %v not set", p)
		}
	}
	if c.Grid[5][10]&rune(pixelMap[0][0]) != 0 {
		t.Error("centre should be empty for an outline")
	}

	c.Clear()
	c.DrawCircle(5, 5, 0)
	if c.Count() != 1 {
		t.Errorf("zero radius count = %d", c.Count())
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(20, 20, 3)
	// lattice points with x^2+y^2 <= 9
	if got := c.Count(); got != 29 {
		t.Errorf("count = %d, want 29", got)
	}
}

func TestFillPolygon(t *testing.T) {
	c := NewCanvas(10, 5)
	square := []image.Point{{2, 2}, {12, 2}, {12, 12}, {2, 12}}
	c.FillPolygon(square)
	if got := c.Count(); got != 121 {
		t.Errorf("square count = %d, want 121", got)
	}

	c.Clear()
	tri := []image.Point{{0, 0}, {10, 0}, {0, 10}}
	c.FillPolygon(tri)
	got := c.Count()
	if got < 50 || got > 70 {
		t.Errorf("triangle count = %d, want about 60", got)
	}

	c.Clear()
	c.FillPolygon([]image.Point{{0, 0}, {4, 0}})
	if c.Count() != 5 {
		t.Errorf("degenerate polygon count = %d, want 5", c.Count())
	}
}

func TestFillPolygonClipped(t *testing.T) {
	c := NewCanvas(2, 1)
	c.FillPolygon([]image.Point{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}})
	if c.Count() != 4*4 {
		t.Errorf("count = %d, want 16", c.Count())
	}
}
