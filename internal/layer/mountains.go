package layer

import (
	"fmt"
	"strings"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

const (
	mountainLayers   = 3
	mountainBaseY    = 650
	mountainDepthY   = 80
	mountainShiftY   = 40
	mountainColorInc = 0x111111
)

// Ridge is one mountain silhouette.
type Ridge struct {
	// Points run along the ridgeline left to right, then close through the
	// bottom-right and bottom-left corners.
	Points  [][2]int
	Color   string
	Opacity float64
}

// Ridges walks the three parallax ridgelines, back to front.
//
// Deeper layers sit lower, are more opaque and lighter: their colour is
// bg_start plus layer*0x111111, clamped at 0xFFFFFF. Several layers can
// clamp to the same white; that is kept as is.
func Ridges(p theme.Palette, s *seed.Stream, c Canvas) []Ridge {
	base, err := theme.ParseHex(p.BgStart)
	if err != nil {
		base = 0
	}

	ridges := make([]Ridge, 0, mountainLayers)
	for layer := 0; layer < mountainLayers; layer++ {
		yOffset := mountainBaseY + layer*mountainDepthY
		color := uint64(base) + uint64(layer)*mountainColorInc
		if color > theme.MaxColor {
			color = theme.MaxColor
		}

		points := [][2]int{{0, yOffset + s.Int(50, 120)}}
		x := 0
		for x < c.Width {
			x += s.Int(120, 300)
			y := yOffset - s.Int(50, 200) + layer*mountainShiftY
			points = append(points, [2]int{min(x, c.Width), y})
		}
		points = append(points,
			[2]int{c.Width, yOffset + 100},
			[2]int{c.Width, c.Height},
			[2]int{0, c.Height},
		)

		ridges = append(ridges, Ridge{
			Points:  points,
			Color:   theme.FormatHex(uint32(color)),
			Opacity: 0.4 + float64(float64(layer)*0.2),
		})
	}
	return ridges
}

// Mountains renders the ridgelines as soft-shadowed polygons.
func Mountains(p theme.Palette, s *seed.Stream, c Canvas) string {
	ridges := Ridges(p, s, c)
	polys := make([]string, len(ridges))
	for i, r := range ridges {
		pts := make([]string, len(r.Points))
		for j, pt := range r.Points {
			pts[j] = itoa(pt[0]) + "," + itoa(pt[1])
		}
		polys[i] = fmt.Sprintf(`  <polygon points="%s" fill="%s" opacity="%s" filter="url(#%s)"/>`,
			strings.Join(pts, " "), r.Color, fixed(r.Opacity, 1), ShadowSoftID)
	}
	return strings.Join(polys, "\n")
}
