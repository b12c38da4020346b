package layer

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

var democracy, _ = theme.Builtin().Palette(theme.Democracy)

func attrs(t *testing.T, fragment, element, attr string) []float64 {
	t.Helper()
	re := regexp.MustCompile(`<` + element + `\b[^>]*?\s` + attr + `="([-0-9.]+)"`)
	var out []float64
	for _, m := range re.FindAllStringSubmatch(fragment, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func inRange(t *testing.T, values []float64, lo, hi float64, what string) {
	t.Helper()
	require.NotEmpty(t, values, what)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, lo, what)
		assert.LessOrEqual(t, v, hi, what)
	}
}

func TestStack_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"background", "starfield", "mountains", "lines", "shapes", "symbol", "particles", "fog"},
		Names())

	streams := map[int]bool{}
	for _, l := range Stack(DefaultOptions) {
		assert.False(t, streams[l.Stream], "stream %d reused", l.Stream)
		streams[l.Stream] = true
	}
	assert.Len(t, streams, 8)
}

func TestStarfield_Bounds(t *testing.T) {
	for _, slug := range []string{"a", "b", "democracy-transition", "untitled"} {
		svg := Starfield(25)(democracy, seed.New(slug, StarfieldStream), DefaultCanvas)
		assert.Equal(t, 25, strings.Count(svg, "<circle"))
		inRange(t, attrs(t, svg, "circle", "cx"), 50, 1870, "cx")
		inRange(t, attrs(t, svg, "circle", "cy"), 30, 360, "cy")
		inRange(t, attrs(t, svg, "circle", "r"), 0.8, 2.5, "r")
		inRange(t, attrs(t, svg, "circle", "opacity"), 0.2, 0.6, "opacity")
		assert.True(t, strings.HasPrefix(svg, `  <g fill="#fff">`))
	}
}

func TestStarfield_SeedSensitive(t *testing.T) {
	a := Starfield(25)(democracy, seed.New("a", StarfieldStream), DefaultCanvas)
	b := Starfield(25)(democracy, seed.New("b", StarfieldStream), DefaultCanvas)
	assert.NotEqual(t, attrs(t, a, "circle", "cx"), attrs(t, b, "circle", "cx"))
}

func TestParticles_Bounds(t *testing.T) {
	svg := Particles(20)(democracy, seed.New("particles", ParticlesStream), DefaultCanvas)
	assert.Equal(t, 20, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, `fill="`+democracy.Particle+`"`)
	inRange(t, attrs(t, svg, "circle", "cx"), 50, 1870, "cx")
	inRange(t, attrs(t, svg, "circle", "cy"), 100, 980, "cy")
	inRange(t, attrs(t, svg, "circle", "r"), 1, 3.5, "r")
	inRange(t, attrs(t, svg, "circle", "opacity"), 0.05, 0.2, "opacity")
}

func TestRidges_DemocracyTransition(t *testing.T) {
	ridges := Ridges(democracy, seed.New("democracy-transition", MountainsStream), DefaultCanvas)
	require.Len(t, ridges, 3)

	first := ridges[0]
	assert.Equal(t, [2]int{0, 736}, first.Points[0])
	assert.Equal(t, [2]int{190, 497}, first.Points[1])
	assert.Equal(t, [2]int{1920, 520}, first.Points[len(first.Points)-4])
	assert.Equal(t, "#0f0c29", first.Color)
	assert.Equal(t, "#201d3a", ridges[1].Color)
	assert.Equal(t, "#312e4b", ridges[2].Color)
	assert.InDelta(t, 0.4, ridges[0].Opacity, 1e-9)
	assert.InDelta(t, 0.6, ridges[1].Opacity, 1e-9)
	assert.InDelta(t, 0.8, ridges[2].Opacity, 1e-9)
}

func TestRidges_Shape(t *testing.T) {
	for _, slug := range []string{"a", "b", "c", "long-slug-for-ridges"} {
		ridges := Ridges(democracy, seed.New(slug, MountainsStream), DefaultCanvas)
		for layer, r := range ridges {
			n := len(r.Points)
			require.GreaterOrEqual(t, n, 5)
			assert.Equal(t, [2]int{0, 1080}, r.Points[n-1])
			assert.Equal(t, [2]int{1920, 1080}, r.Points[n-2])
			assert.Equal(t, [2]int{1920, 650 + layer*80 + 100}, r.Points[n-3])

			// The walk ends on the right edge and never goes backwards.
			ridge := r.Points[1 : n-3]
			assert.Equal(t, 1920, ridge[len(ridge)-1][0])
			for i := 1; i < len(ridge); i++ {
				assert.Greater(t, ridge[i][0], ridge[i-1][0])
			}
			for _, pt := range ridge {
				base := 650 + layer*80 + layer*40
				assert.GreaterOrEqual(t, pt[1], base-200)
				assert.LessOrEqual(t, pt[1], base-50)
			}
		}
	}
}

func TestRidges_ColourClamp(t *testing.T) {
	light := democracy
	light.BgStart = "#f0f0f0"
	ridges := Ridges(light, seed.New("clamp", MountainsStream), DefaultCanvas)
	assert.Equal(t, "#f0f0f0", ridges[0].Color)
	assert.Equal(t, "#ffffff", ridges[1].Color)
	assert.Equal(t, "#ffffff", ridges[2].Color)
}

func TestConnectingLines_Bounds(t *testing.T) {
	svg := ConnectingLines(democracy, seed.New("lines", LinesStream), DefaultCanvas)
	n := strings.Count(svg, "<line")
	assert.GreaterOrEqual(t, n, 5)
	assert.LessOrEqual(t, n, 12)

	x1 := attrs(t, svg, "line", "x1")
	y1 := attrs(t, svg, "line", "y1")
	x2 := attrs(t, svg, "line", "x2")
	y2 := attrs(t, svg, "line", "y2")
	inRange(t, x1, 100, 1820, "x1")
	inRange(t, y1, 200, 880, "y1")
	for i := range x1 {
		assert.LessOrEqual(t, abs(x2[i]-x1[i]), 300.0)
		assert.LessOrEqual(t, abs(y2[i]-y1[i]), 200.0)
	}
	inRange(t, attrs(t, svg, "line", "opacity"), 0.05, 0.15, "opacity")
}

func TestGeometricShapes_CountAndKinds(t *testing.T) {
	for _, slug := range []string{"a", "b", "c", "d", "e"} {
		svg := GeometricShapes(democracy, seed.New(slug, ShapesStream), DefaultCanvas)
		n := strings.Count(svg, "<circle") + strings.Count(svg, "<rect") + strings.Count(svg, "<polygon")
		assert.GreaterOrEqual(t, n, 4)
		assert.LessOrEqual(t, n, 8)
		assert.Equal(t, strings.Count(svg, "<rect"), strings.Count(svg, "rotate("))
		inRange(t, attrs(t, svg, "[a-z]+", "opacity"), 0.08, 0.25, "opacity")
	}
}

func TestCentralSymbol_Variants(t *testing.T) {
	tests := []struct {
		slug string
		kind SymbolKind
		mark string
	}{
		{"french-revolution", SymbolRings, `r="245"`},
		{"democracy-transition", SymbolDiamond, `transform="rotate(45 960 490)"`},
		{"army-reform", SymbolBurst, `r="30"`},
		{"freedom-of-speech", SymbolArch, `<path d="M 760,610`},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.kind, PickSymbol(seed.New(tt.slug, SymbolStream)).Kind())
			svg := CentralSymbol(democracy, seed.New(tt.slug, SymbolStream), DefaultCanvas)
			assert.Contains(t, svg, tt.mark)
		})
	}
}

func TestBurst_Rays(t *testing.T) {
	svg := Burst{}.render(democracy, 960, 490)
	assert.Equal(t, 12, strings.Count(svg, "<line"))
	assert.Contains(t, svg, `x2="1180" y2="490"`)
	assert.Contains(t, svg, `x2="960" y2="710"`)
	assert.Contains(t, svg, `x2="740" y2="490"`)
}

func TestRings_Opacity(t *testing.T) {
	svg := Rings{}.render(democracy, 960, 490)
	assert.Equal(t, []float64{0.3, 0.24, 0.18, 0.12}, attrs(t, svg, "circle", "opacity"))
	assert.Equal(t, []float64{80, 135, 190, 245}, attrs(t, svg, "circle", "r"))
}

func TestStaticLayers_IgnoreStream(t *testing.T) {
	a := seed.New("a", FogStream)
	b := seed.New("b", FogStream)
	assert.Equal(t, Fog(democracy, a, DefaultCanvas), Fog(democracy, b, DefaultCanvas))
	assert.Equal(t, Background(democracy, a, DefaultCanvas), Background(democracy, b, DefaultCanvas))
	assert.Contains(t, Fog(democracy, nil, DefaultCanvas), `y="830"`)
}

func TestDefs(t *testing.T) {
	defs := Defs(democracy)
	for _, id := range []string{BackgroundGradientID, GlowGradientID, Shadow3DID, ShadowSoftID, GlowFilterID, AccentGradientID} {
		assert.Contains(t, defs, `id="`+id+`"`)
	}
	assert.NotContains(t, defs, "feDropShadow")
	assert.NotContains(t, defs, "transparent")
	assert.True(t, strings.HasPrefix(defs, "  <defs>\n"))
	assert.True(t, strings.HasSuffix(defs, "  </defs>"))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
