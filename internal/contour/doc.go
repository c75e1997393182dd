// Package contour extracts a smooth "metaball" outline from a set of discs.
//
// Each frame the caller resets the [Field], streams discs in with
// [Field.AddCircle] and calls [Field.Draw]. Draw samples a blended signed
// distance at every grid vertex, using the polynomial smooth minimum
// [SMin] so nearby discs fuse, and then runs marching squares over the
// grid. Each cell yields at most one convex polygon picked from a fixed
// 16-entry case table; the two saddle cases always produce the same
// hexagon instead of being disambiguated by a centre sample.
//
// The vertex sweep is the only parallel section: every vertex writes its
// own sample and nothing else.
package contour
