package verlet

import "math"

// DefaultCellSize is the partition cell edge in world units.
const DefaultCellSize = 50.0

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Partition is a uniform-grid broad-phase keyed by cell coordinate. The
// grid is unbounded; only occupied cells hold a bucket.
//
// A particle is filed under every cell its bounding box touches, so the
// same id can be reported more than once by ForEachCandidate.
type Partition struct {
	cellSize float64
	cells    map[Cell][]int
}

// NewPartition creates an empty partition. Non-positive cell sizes fall
// back to DefaultCellSize.
func NewPartition(cellSize float64) *Partition {
	if !(cellSize > 0) {
		cellSize = DefaultCellSize
	}
	return &Partition{
		cellSize: cellSize,
		cells:    make(map[Cell][]int),
	}
}

// CellSize returns the cell edge length.
func (g *Partition) CellSize() float64 { return g.cellSize }

// SetCellSize changes the cell edge and drops all buckets.
func (g *Partition) SetCellSize(cellSize float64) {
	if !(cellSize > 0) {
		return
	}
	g.cellSize = cellSize
	clear(g.cells)
}

// Clear empties every bucket, keeping the bucket storage for reuse.
func (g *Partition) Clear() {
	for c, ids := range g.cells {
		g.cells[c] = ids[:0]
	}
}

// Range returns the inclusive cell range covered by p's bounding box.
func (g *Partition) Range(p Particle) (lo, hi Cell) {
	x, y, r := p.Position.X, p.Position.Y, p.Radius
	lo = Cell{
		X: int(math.Floor((x - r) / g.cellSize)),
		Y: int(math.Floor((y - r) / g.cellSize)),
	}
	hi = Cell{
		X: int(math.Floor((x + r) / g.cellSize)),
		Y: int(math.Floor((y + r) / g.cellSize)),
	}
	return lo, hi
}

// Insert files id under every cell in p's range. Particles with a
// non-finite position are not filed.
func (g *Partition) Insert(p Particle, id int) {
	if !placeable(p) {
		return
	}
	lo, hi := g.Range(p)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			c := Cell{X: x, Y: y}
			g.cells[c] = append(g.cells[c], id)
		}
	}
}

// ForEachCandidate calls fn for every id stored in any cell of p's range.
// Ids are not de-duplicated.
func (g *Partition) ForEachCandidate(p Particle, fn func(id int)) {
	if !placeable(p) {
		return
	}
	lo, hi := g.Range(p)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			for _, id := range g.cells[Cell{X: x, Y: y}] {
				fn(id)
			}
		}
	}
}

// Buckets returns the number of non-empty cells.
func (g *Partition) Buckets() int {
	n := 0
	for _, ids := range g.cells {
		if len(ids) > 0 {
			n++
		}
	}
	return n
}

func placeable(p Particle) bool {
	v := p.Position.X + p.Position.Y + p.Radius
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
