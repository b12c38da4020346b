package layer

import (
	"fmt"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// Edge margins and ranges of the scattered dots.
const (
	scatterMarginX = 50

	starTop         = 30
	starMinRadius   = 0.8
	starMaxRadius   = 2.5
	starMinOpacity  = 0.2
	starMaxOpacity  = 0.6
	particleMarginY = 100
	particleMinR    = 1
	particleMaxR    = 3.5
	particleMinOp   = 0.05
	particleMaxOp   = 0.2
)

// Starfield scatters count white dots over the top third of the canvas.
func Starfield(count int) Func {
	return func(_ theme.Palette, s *seed.Stream, c Canvas) string {
		stars := make([]string, 0, count)
		for i := 0; i < count; i++ {
			cx := s.Int(scatterMarginX, c.Width-scatterMarginX)
			cy := s.Int(starTop, c.Height/3)
			r := s.Float(starMinRadius, starMaxRadius)
			op := s.Float(starMinOpacity, starMaxOpacity)
			stars = append(stars, dot(cx, cy, r, op))
		}
		return group(`  <g fill="#fff">`, stars)
	}
}

// Particles scatters count faint dots in the palette's particle colour over
// the whole canvas, keeping clear of the edges.
func Particles(count int) Func {
	return func(p theme.Palette, s *seed.Stream, c Canvas) string {
		parts := make([]string, 0, count)
		for i := 0; i < count; i++ {
			cx := s.Int(scatterMarginX, c.Width-scatterMarginX)
			cy := s.Int(particleMarginY, c.Height-particleMarginY)
			r := s.Float(particleMinR, particleMaxR)
			op := s.Float(particleMinOp, particleMaxOp)
			parts = append(parts, dot(cx, cy, r, op))
		}
		return group(fmt.Sprintf(`  <g fill="%s">`, p.Particle), parts)
	}
}

func dot(cx, cy int, r, op float64) string {
	return fmt.Sprintf(`    <circle cx="%d" cy="%d" r="%s" opacity="%s"/>`, cx, cy, fixed(r, 1), fixed(op, 2))
}
