// Package viz renders a running granular simulation in the terminal.
//
// [Canvas] is a braille pixel buffer (2x4 dots per cell) with line,
// circle and polygon rasterisers. [Model] is a Bubble Tea program that
// steps a solver at a fixed tick and draws either the particles or the
// metaball outline produced by the contour package.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	A     - Toggle spawning
//	C     - Remove all particles
//	M     - Toggle metaball view
//	+/-   - Adjust smoothness
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
