package layer

import (
	"fmt"
	"strings"

	"github.com/roach88/covergen/internal/theme"
)

// Paint server and filter ids referenced by the fragments.
const (
	BackgroundGradientID = "bg"
	GlowGradientID       = "glow"
	Shadow3DID           = "shadow3d"
	ShadowSoftID         = "shadowSoft"
	GlowFilterID         = "glowFilter"
	AccentGradientID     = "accentGrad"
)

// Defs renders the shared <defs> block for p. Drop shadows are built from
// SVG 1.1 filter primitives.
func Defs(p theme.Palette) string {
	var b strings.Builder
	b.WriteString("  <defs>\n")
	fmt.Fprintf(&b, `    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" stop-color="%s"/>
      <stop offset="50%%" stop-color="%s"/>
      <stop offset="100%%" stop-color="%s"/>
    </linearGradient>
`, BackgroundGradientID, p.BgStart, p.BgMid, p.BgEnd)
	fmt.Fprintf(&b, `    <radialGradient id="%s" cx="70%%" cy="35%%" r="50%%">
      <stop offset="0%%" stop-color="%s" stop-opacity="0.3"/>
      <stop offset="70%%" stop-color="%s" stop-opacity="0.05"/>
      <stop offset="100%%" stop-color="%s" stop-opacity="0"/>
    </radialGradient>
`, GlowGradientID, p.Glow, p.Glow, p.Glow)
	b.WriteString(dropShadow(Shadow3DID, 6, 8, 12, "0.5"))
	b.WriteString(dropShadow(ShadowSoftID, 3, 4, 8, "0.3"))
	fmt.Fprintf(&b, `    <filter id="%s">
      <feGaussianBlur stdDeviation="6" result="b"/>
      <feMerge>
        <feMergeNode in="b"/>
        <feMergeNode in="SourceGraphic"/>
      </feMerge>
    </filter>
`, GlowFilterID)
	fmt.Fprintf(&b, `    <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" stop-color="%s"/>
      <stop offset="100%%" stop-color="%s"/>
    </linearGradient>
`, AccentGradientID, p.Accent, p.Accent2)
	b.WriteString("  </defs>")
	return b.String()
}

func dropShadow(id string, dx, dy, blur int, opacity string) string {
	return fmt.Sprintf(`    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">
      <feGaussianBlur in="SourceAlpha" stdDeviation="%d"/>
      <feOffset dx="%d" dy="%d" result="offsetBlur"/>
      <feFlood flood-color="#000" flood-opacity="%s"/>
      <feComposite in2="offsetBlur" operator="in"/>
      <feMerge>
        <feMergeNode/>
        <feMergeNode in="SourceGraphic"/>
      </feMerge>
    </filter>
`, id, blur, dx, dy, opacity)
}
