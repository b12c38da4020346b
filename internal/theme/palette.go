package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette is a named set of colours applied uniformly to one cover.
// Every colour is a "#rrggbb" string and is emitted verbatim.
type Palette struct {
	Name     string `json:"name"`
	BgStart  string `json:"bg_start"`
	BgMid    string `json:"bg_mid"`
	BgEnd    string `json:"bg_end"`
	Accent   string `json:"accent"`
	Accent2  string `json:"accent2"`
	Glow     string `json:"glow"`
	Particle string `json:"particle"`
}

// Colors returns the palette's colours in declaration order.
func (p Palette) Colors() []string {
	return []string{p.BgStart, p.BgMid, p.BgEnd, p.Accent, p.Accent2, p.Glow, p.Particle}
}

// Validate checks that every colour parses.
func (p Palette) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("palette has no name")
	}
	for _, c := range p.Colors() {
		if _, err := ParseHex(c); err != nil {
			return fmt.Errorf("palette %s: %w", p.Name, err)
		}
	}
	return nil
}

// ParseHex parses a "#rrggbb" colour into its 24-bit value.
func ParseHex(s string) (uint32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return uint32(v), nil
}

// FormatHex formats a 24-bit value as "#rrggbb".
func FormatHex(v uint32) string {
	return fmt.Sprintf("#%06x", v&MaxColor)
}

// MaxColor is the largest 24-bit colour value.
const MaxColor = 0xFFFFFF

// Canonical palette names.
const (
	Democracy  = "democracy"
	Revolution = "revolution"
	Philosophy = "philosophy"
	Politics   = "politics"
	Freedom    = "freedom"
	Military   = "military"
	History    = "history"
	Test       = "test"
)

// DefaultName is the palette used when no keyword matches. It is
// deliberately not the first entry of the keyword table.
const DefaultName = Philosophy

var builtinPalettes = []Palette{
	{Democracy, "#0f0c29", "#302b63", "#24243e", "#7c6dd8", "#c4b5fd", "#f7c948", "#e2d5ff"},
	{Revolution, "#1a0a0a", "#2d1117", "#1a1a2e", "#dc2626", "#f59e0b", "#ef4444", "#fca5a5"},
	{Philosophy, "#0a192f", "#112240", "#1d3461", "#64ffda", "#8892b0", "#00d4aa", "#ccd6f6"},
	{Politics, "#0d1b2a", "#1b2838", "#2c3e50", "#3498db", "#e74c3c", "#f39c12", "#ecf0f1"},
	{Freedom, "#0b0b1a", "#1a1a3e", "#2d1b69", "#a78bfa", "#f9a825", "#e879f9", "#ddd6fe"},
	{Military, "#1a1a1a", "#2d2d2d", "#1a2332", "#6b7280", "#9ca3af", "#ef4444", "#d1d5db"},
	{History, "#1c1410", "#2d1f15", "#3d2b1f", "#d4a574", "#e8c9a0", "#c88b48", "#f5e6d3"},
	{Test, "#0f172a", "#1e293b", "#334155", "#38bdf8", "#818cf8", "#22d3ee", "#e2e8f0"},
}

// builtinKeywords is ordered: the first keyword found wins.
var builtinKeywords = []KeywordRule{
	{"transition", Democracy},
	{"گذار", Democracy},
	{"دموکرا", Democracy},
	{"انقلاب", Revolution},
	{"revolution", Revolution},
	{"ارتش", Military},
	{"نظامی", Military},
	{"army", Military},
	{"فرانسه", Revolution},
	{"روسیه", Revolution},
	{"آزادی", Freedom},
	{"freedom", Freedom},
	{"فلسف", Philosophy},
	{"تغییر سیاسی", Politics},
	{"رژیم", Politics},
	{"راست", Politics},
	{"چپ", Politics},
	{"test", Test},
	{"chart", Test},
	{"mermaid", Test},
	{"تاریخ", History},
}
