package contour

import "gonum.org/v1/gonum/spatial/r2"

// Corner and edge point labels within a cell:
//
//	c0 --e01-- c1
//	 |          |
//	e03        e12
//	 |          |
//	c3 --e32-- c2
const (
	c0 = iota
	c1
	c2
	c3
	e01
	e12
	e32
	e03
)

// caseTable lists, for each 4-bit inside mask (bit i set when corner i is
// inside), the loop of labelled points forming the filled polygon.
// Cases 5 and 10 are the saddles.
var caseTable = [16][]int{
	0b0000: nil,
	0b0001: {c0, e01, e03},
	0b0010: {e01, c1, e12},
	0b0011: {c0, c1, e12, e03},
	0b0100: {e12, c2, e32},
	0b0101: {c0, e01, e12, c2, e32, e03},
	0b0110: {e01, c1, c2, e32},
	0b0111: {c0, c1, c2, e32, e03},
	0b1000: {e03, e32, c3},
	0b1001: {c0, e01, e32, c3},
	0b1010: {e01, c1, e12, e32, c3, e03},
	0b1011: {c0, c1, e12, e32, c3},
	0b1100: {e03, e12, c2, c3},
	0b1101: {c0, e01, e12, c2, c3},
	0b1110: {e01, c1, c2, c3, e03},
	0b1111: {c0, c1, c2, c3},
}

type cell struct {
	v [4]float64
	p [4]r2.Vec
}

func (c *cell) mask() int {
	m := 0
	for i, v := range c.v {
		if v <= Threshold {
			m |= 1 << i
		}
	}
	return m
}

func (c *cell) point(label int) r2.Vec {
	switch label {
	case e01:
		return c.edge(c0, c1)
	case e12:
		return c.edge(c1, c2)
	case e32:
		return c.edge(c3, c2)
	case e03:
		return c.edge(c0, c3)
	default:
		return c.p[label]
	}
}

// edge interpolates the threshold crossing between corners a and b. Equal
// or non-finite corner values fall back to the edge midpoint.
func (c *cell) edge(a, b int) r2.Vec {
	va, vb := c.v[a], c.v[b]
	t := 0.5
	if d := vb - va; d != 0 {
		if u := (Threshold - va) / d; u >= 0 && u <= 1 {
			t = u
		} else if u < 0 {
			t = 0
		} else if u > 1 {
			t = 1
		}
	}
	return r2.Add(c.p[a], r2.Scale(t, r2.Sub(c.p[b], c.p[a])))
}

func (c *cell) polygon() Polygon {
	labels := caseTable[c.mask()]
	if labels == nil {
		return nil
	}
	poly := make(Polygon, len(labels))
	for i, l := range labels {
		poly[i] = c.point(l)
	}
	return poly
}
