package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
	"github.com/san-kum/granular/internal/verlet"
	"gonum.org/v1/gonum/spatial/r2"
)

// FrameToSVG renders one frame: the arena outline, every particle and the
// metaball outline. frame is expected in view space already (as returned
// by contour.Field.Draw with view); particles and the arena are in world
// space and are mapped through view here.
func FrameToSVG(frame []contour.Polygon, particles []verlet.Particle, view dynamo.Affine, width, height int, arena float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	scale := view.Scale()
	if arena > 0 {
		c := view.Apply(r2.Vec{})
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333333" stroke-width="2"/>
`, c.X, c.Y, arena*scale))
	}

	if len(particles) > 0 {
		sb.WriteString("<g>\n")
		for _, p := range particles {
			c := view.Apply(p.Position)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.X, c.Y, p.Radius*scale, hexColor(p.Color)))
		}
		sb.WriteString("</g>\n")
	}

	if len(frame) > 0 {
		// quads share edges with their neighbours, so a stroke would draw
		// the whole grid; fill only
		sb.WriteString(`<g fill="#4fc3f7" fill-opacity="0.55">` + "\n")
		for _, poly := range frame {
			if len(poly) < 3 {
				continue
			}
			sb.WriteString(`<polygon points="`)
			for i, v := range poly {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", v.X, v.Y))
			}
			sb.WriteString("\"/>\n")
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a scalar series over its index, e.g. the collision
// count per tick.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
