package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/granular/internal/dynamo"
)

const (
	DefaultWidth      = 100
	DefaultHeight     = 100
	DefaultCellSize   = 10.0
	DefaultSmoothness = 50.0

	// Threshold separates inside (<=) from outside.
	Threshold = 0.0

	minChunk = 256
)

// Config fixes the sampling grid.
type Config struct {
	Width      int // cells along x
	Height     int // cells along y
	CellSize   float64
	Smoothness float64
	Workers    int // 0 = GOMAXPROCS
}

func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		CellSize:   DefaultCellSize,
		Smoothness: DefaultSmoothness,
	}
}

// Circle is one disc of the current frame.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// Polygon is a closed vertex loop in output space.
type Polygon []r2.Vec

// Field is a fixed (Width+1) x (Height+1) grid of scalar samples centred
// on the world origin.
type Field struct {
	cfg     Config
	stride  int
	circles []Circle
	points  []float64
}

// NewField allocates the sample grid. Non-positive dimensions fall back to
// the defaults.
func NewField(cfg Config) *Field {
	def := DefaultConfig()
	if cfg.Width < 1 {
		cfg.Width = def.Width
	}
	if cfg.Height < 1 {
		cfg.Height = def.Height
	}
	if !(cfg.CellSize > 0) {
		cfg.CellSize = def.CellSize
	}
	if cfg.Smoothness < 0 {
		cfg.Smoothness = 0
	}

	f := &Field{
		cfg:    cfg,
		stride: cfg.Width + 1,
		points: make([]float64, (cfg.Width+1)*(cfg.Height+1)),
	}
	f.NewFrame()
	return f
}

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Smoothness() float64 { return f.cfg.Smoothness }

// SetSmoothness sets the blend distance k. Zero gives plain union.
func (f *Field) SetSmoothness(k float64) {
	if k < 0 || math.IsNaN(k) {
		k = 0
	}
	f.cfg.Smoothness = k
}

// NewFrame drops the previous frame's discs and resets every sample to +Inf.
func (f *Field) NewFrame() {
	f.circles = f.circles[:0]
	inf := math.Inf(1)
	for i := range f.points {
		f.points[i] = inf
	}
}

// AddCircle queues a disc for the current frame. Radii below one cell are
// raised to one cell.
func (f *Field) AddCircle(pos r2.Vec, radius float64) {
	f.circles = append(f.circles, Circle{Center: pos, Radius: math.Max(radius, f.cfg.CellSize)})
}

// Circles returns the number of discs queued this frame.
func (f *Field) Circles() int { return len(f.circles) }

// Vertex returns the world position of grid vertex (x, y).
func (f *Field) Vertex(x, y int) r2.Vec {
	return r2.Vec{
		X: float64(x-f.cfg.Width/2) * f.cfg.CellSize,
		Y: float64(y-f.cfg.Height/2) * f.cfg.CellSize,
	}
}

// Extent returns the world-space corners of the grid.
func (f *Field) Extent() r2.Box {
	return r2.Box{Min: f.Vertex(0, 0), Max: f.Vertex(f.cfg.Width, f.cfg.Height)}
}

// Sample returns the field value at vertex (x, y) from the last Draw, or
// NaN when (x, y) lies outside the grid.
func (f *Field) Sample(x, y int) float64 {
	if x < 0 || y < 0 || x > f.cfg.Width || y > f.cfg.Height {
		return math.NaN()
	}
	return f.points[x+y*f.stride]
}

// Draw samples the field and returns one polygon per non-empty cell,
// mapped through t.
func (f *Field) Draw(t dynamo.Affine) []Polygon {
	f.sample()
	return f.march(t)
}

func (f *Field) sample() {
	if len(f.circles) == 0 {
		return
	}
	k := f.cfg.Smoothness
	dynamo.ParallelFor(len(f.points), minChunk, f.cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			p := f.Vertex(i%f.stride, i/f.stride)
			v := f.points[i]
			for _, c := range f.circles {
				v = SMin(r2.Norm(r2.Sub(c.Center, p))-c.Radius, v, k)
			}
			f.points[i] = v
		}
	})
}

func (f *Field) march(t dynamo.Affine) []Polygon {
	var polys []Polygon
	w, h := f.cfg.Width, f.cfg.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cell{
				v: [4]float64{
					f.points[x+y*f.stride],
					f.points[x+1+y*f.stride],
					f.points[x+1+(y+1)*f.stride],
					f.points[x+(y+1)*f.stride],
				},
				p: [4]r2.Vec{
					t.Apply(f.Vertex(x, y)),
					t.Apply(f.Vertex(x+1, y)),
					t.Apply(f.Vertex(x+1, y+1)),
					t.Apply(f.Vertex(x, y+1)),
				},
			}
			if poly := c.polygon(); poly != nil {
				polys = append(polys, poly)
			}
		}
	}
	return polys
}

// SMin is the polynomial smooth minimum with blend width k.
func SMin(a, b, k float64) float64 {
	if !(k > 0) {
		return math.Min(a, b)
	}
	h := math.Max(k-math.Abs(a-b), 0) / k
	return math.Min(a, b) - h*h*k*0.25
}
