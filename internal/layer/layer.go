// Package layer holds the cover's layer generators.
//
// Every generator shares one contract: a pure function of a palette, its own
// seeded stream and the canvas, returning an SVG fragment. Generators keep no
// state, never read each other's output and have no error path.
//
// Each layer owns a fixed stream index, independent of its position in the
// compositing order, so changing how many values one layer draws never moves
// another layer's geometry.
package layer

import (
	"strconv"
	"strings"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// Canvas is the drawing area in user units.
type Canvas struct {
	Width  int
	Height int
}

// DefaultCanvas is the 16:9 cover size.
var DefaultCanvas = Canvas{Width: 1920, Height: 1080}

// Center returns the focal point: horizontally centred, 50 units above the
// vertical centre.
func (c Canvas) Center() (int, int) {
	return c.Width / 2, c.Height/2 - 50
}

// Func renders one layer.
type Func func(p theme.Palette, s *seed.Stream, c Canvas) string

// Stream indices. They are part of the output contract.
const (
	BackgroundStream = iota
	StarfieldStream
	MountainsStream
	ShapesStream
	LinesStream
	SymbolStream
	ParticlesStream
	FogStream
)

// Layer is a named generator bound to its stream index.
type Layer struct {
	Name   string
	Stream int
	Render Func
}

// Fragment is one rendered layer.
type Fragment struct {
	Name string
	SVG  string
}

// Options tunes the counts of the particle-like layers.
type Options struct {
	Stars     int
	Particles int
}

// DefaultOptions matches the canonical cover.
var DefaultOptions = Options{Stars: 25, Particles: 20}

// Stack returns the layers in compositing order. Later layers draw over
// earlier ones; the order is part of the visual contract.
func Stack(opts Options) []Layer {
	return []Layer{
		{Name: "background", Stream: BackgroundStream, Render: Background},
		{Name: "starfield", Stream: StarfieldStream, Render: Starfield(opts.Stars)},
		{Name: "mountains", Stream: MountainsStream, Render: Mountains},
		{Name: "lines", Stream: LinesStream, Render: ConnectingLines},
		{Name: "shapes", Stream: ShapesStream, Render: GeometricShapes},
		{Name: "symbol", Stream: SymbolStream, Render: CentralSymbol},
		{Name: "particles", Stream: ParticlesStream, Render: Particles(opts.Particles)},
		{Name: "fog", Stream: FogStream, Render: Fog},
	}
}

// Names returns the layer names in compositing order.
func Names() []string {
	stack := Stack(DefaultOptions)
	names := make([]string, len(stack))
	for i, l := range stack {
		names[i] = l.Name
	}
	return names
}

func group(open string, items []string) string {
	return open + "\n" + strings.Join(items, "\n") + "\n  </g>"
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// fixed formats v with prec decimals, rounding half to even on the exact
// binary value.
func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
