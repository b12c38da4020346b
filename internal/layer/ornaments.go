package layer

import (
	"fmt"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// ConnectingLines draws 5 to 12 faint segments starting in the central area,
// each reaching at most 300 units across and 200 units up or down.
func ConnectingLines(p theme.Palette, s *seed.Stream, c Canvas) string {
	count := s.Int(5, 12)
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		x1 := s.Int(100, c.Width-100)
		y1 := s.Int(200, c.Height-200)
		x2 := x1 + s.Int(-300, 300)
		y2 := y1 + s.Int(-200, 200)
		op := s.Float(0.05, 0.15)
		sw := s.Float(1, 3)
		lines = append(lines, fmt.Sprintf(
			`    <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%s" opacity="%s"/>`,
			x1, y1, x2, y2, p.Accent2, fixed(sw, 1), fixed(op, 2)))
	}
	return group("  <g>", lines)
}

// ShapeKind is one of the ornament shapes.
type ShapeKind string

const (
	ShapeCircle   ShapeKind = "circle"
	ShapeRect     ShapeKind = "rect"
	ShapeTriangle ShapeKind = "polygon"
)

var shapeKinds = []ShapeKind{ShapeCircle, ShapeRect, ShapeTriangle}

// GeometricShapes scatters 4 to 8 translucent circles, rotated rounded
// squares and triangles, each with a hard drop shadow.
func GeometricShapes(p theme.Palette, s *seed.Stream, c Canvas) string {
	count := s.Int(4, 8)
	shapes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		cx := s.Int(200, c.Width-200)
		cy := s.Int(200, c.Height-300)
		size := s.Int(40, 120)
		op := fixed(s.Float(0.08, 0.25), 2)

		switch seed.Choice(s, shapeKinds) {
		case ShapeCircle:
			shapes = append(shapes, fmt.Sprintf(
				`    <circle cx="%d" cy="%d" r="%d" fill="%s" opacity="%s" filter="url(#%s)"/>`,
				cx, cy, size, p.Accent, op, Shadow3DID))
		case ShapeRect:
			angle := s.Int(-30, 30)
			shapes = append(shapes, fmt.Sprintf(
				`    <rect x="%d" y="%d" width="%d" height="%d" rx="8" fill="%s" opacity="%s" transform="rotate(%d %d %d)" filter="url(#%s)"/>`,
				cx, cy, size, size, p.Accent2, op, angle, cx+size/2, cy+size/2, Shadow3DID))
		default:
			shapes = append(shapes, fmt.Sprintf(
				`    <polygon points="%d,%d %d,%d %d,%d" fill="%s" opacity="%s" filter="url(#%s)"/>`,
				cx, cy-size, cx-size, cy+size, cx+size, cy+size, p.Glow, op, Shadow3DID))
		}
	}
	return group("  <g>", shapes)
}
