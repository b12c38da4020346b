package layer

import (
	"fmt"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// Background fills the canvas with the diagonal gradient, then the radial
// glow toward the upper right. It draws nothing from its stream.
func Background(_ theme.Palette, _ *seed.Stream, c Canvas) string {
	return fmt.Sprintf(`  <rect width="%d" height="%d" fill="url(#%s)"/>
  <rect width="%d" height="%d" fill="url(#%s)"/>`,
		c.Width, c.Height, BackgroundGradientID,
		c.Width, c.Height, GlowGradientID)
}

// fogBand is the height of the translucent band along the bottom edge.
const fogBand = 250

// Fog lays a translucent band along the bottom and a wide, low ellipse.
// Fixed geometry; it draws nothing from its stream.
func Fog(p theme.Palette, _ *seed.Stream, c Canvas) string {
	return fmt.Sprintf(`  <rect x="0" y="%d" width="%d" height="%d"
        fill="%s" opacity="0.4"/>
  <ellipse cx="%d" cy="%d" rx="%d" ry="200"
           fill="%s" opacity="0.3"/>`,
		c.Height-fogBand, c.Width, fogBand, p.BgStart,
		c.Width/2, c.Height, c.Width, p.BgMid)
}
