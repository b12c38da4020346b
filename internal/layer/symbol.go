package layer

import (
	"fmt"
	"math"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// SymbolKind names a central symbol variant.
type SymbolKind string

const (
	SymbolRings   SymbolKind = "rings"
	SymbolDiamond SymbolKind = "diamond"
	SymbolBurst   SymbolKind = "burst"
	SymbolArch    SymbolKind = "arch"
)

// Symbol is the closed set of focal ornaments. Only the four variants in
// this package implement it.
type Symbol interface {
	Kind() SymbolKind
	render(p theme.Palette, cx, cy int) string
}

// Rings is four concentric circles fading outward.
type Rings struct{}

// Diamond is a rounded square outline rotated 45 degrees around a filled
// inner square.
type Diamond struct{}

// Burst is twelve rays around a glowing core.
type Burst struct{}

// Arch is a double arch silhouette.
type Arch struct{}

func (Rings) Kind() SymbolKind   { return SymbolRings }
func (Diamond) Kind() SymbolKind { return SymbolDiamond }
func (Burst) Kind() SymbolKind   { return SymbolBurst }
func (Arch) Kind() SymbolKind    { return SymbolArch }

// symbols is ordered; one draw over this slice picks the variant.
var symbols = []Symbol{Rings{}, Diamond{}, Burst{}, Arch{}}

// SymbolKinds lists the variants in draw order.
func SymbolKinds() []SymbolKind {
	kinds := make([]SymbolKind, len(symbols))
	for i, s := range symbols {
		kinds[i] = s.Kind()
	}
	return kinds
}

// PickSymbol consumes exactly one draw from s.
func PickSymbol(s *seed.Stream) Symbol {
	return seed.Choice(s, symbols)
}

// CentralSymbol renders the variant picked from s at the canvas focal point.
func CentralSymbol(p theme.Palette, s *seed.Stream, c Canvas) string {
	cx, cy := c.Center()
	return PickSymbol(s).render(p, cx, cy)
}

func (Rings) render(_ theme.Palette, cx, cy int) string {
	rings := make([]string, 4)
	for i := range rings {
		r := 80 + i*55
		op := 0.3 - float64(float64(i)*0.06)
		rings[i] = fmt.Sprintf(
			`    <circle cx="%d" cy="%d" r="%d" fill="none" stroke="url(#%s)" stroke-width="2.5" opacity="%s"/>`,
			cx, cy, r, AccentGradientID, fixed(op, 2))
	}
	return group(fmt.Sprintf(`  <g filter="url(#%s)">`, Shadow3DID), rings)
}

func (Diamond) render(_ theme.Palette, cx, cy int) string {
	const side = 160
	return fmt.Sprintf(`  <g filter="url(#%[1]s)" transform="rotate(45 %[2]d %[3]d)">
    <rect x="%[4]d" y="%[5]d" width="%[6]d" height="%[6]d" rx="12"
          fill="none" stroke="url(#%[7]s)" stroke-width="4" opacity="0.35"/>
    <rect x="%[8]d" y="%[9]d" width="%[10]d" height="%[10]d" rx="8"
          fill="url(#%[7]s)" opacity="0.1"/>
  </g>`,
		Shadow3DID, cx, cy,
		cx-side/2, cy-side/2, side,
		AccentGradientID,
		cx-side/3, cy-side/3, side*2/3)
}

func (Burst) render(p theme.Palette, cx, cy int) string {
	const (
		rays   = 12
		length = 220
	)
	lines := make([]string, 0, rays+1)
	for i := 0; i < rays; i++ {
		angle := (360.0 / rays) * float64(i)
		rad := angle * (math.Pi / 180)
		x2 := float64(cx) + float64(math.Cos(rad)*length)
		y2 := float64(cy) + float64(math.Sin(rad)*length)
		op := 0.15 + float64(float64(i%3)*0.05)
		lines = append(lines, fmt.Sprintf(
			`    <line x1="%d" y1="%d" x2="%s" y2="%s" stroke="%s" stroke-width="2" opacity="%s"/>`,
			cx, cy, fixed(x2, 0), fixed(y2, 0), p.Glow, fixed(op, 2)))
	}
	lines = append(lines, fmt.Sprintf(
		`    <circle cx="%d" cy="%d" r="30" fill="%s" opacity="0.15"/>`, cx, cy, p.Glow))
	return group(fmt.Sprintf(`  <g filter="url(#%s)">`, GlowFilterID), lines)
}

func (Arch) render(_ theme.Palette, cx, cy int) string {
	return fmt.Sprintf(`  <g filter="url(#%s)">
    <path d="M %d,%d Q %d,%d %d,%d
             Q %d,%d %d,%d"
          fill="none" stroke="url(#%s)" stroke-width="5" opacity="0.3"/>
    <path d="M %d,%d Q %d,%d %d,%d
             Q %d,%d %d,%d"
          fill="url(#%s)" opacity="0.06"/>
  </g>`,
		Shadow3DID,
		cx-200, cy+120, cx-200, cy-150, cx, cy-180,
		cx+200, cy-150, cx+200, cy+120,
		AccentGradientID,
		cx-140, cy+120, cx-140, cy-100, cx, cy-120,
		cx+140, cy-100, cx+140, cy+120,
		AccentGradientID)
}
