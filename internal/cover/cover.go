// Package cover composes the layered SVG cover for one article.
//
// Composition is a pure function of the metadata record (and the catalog
// and layer options the Composer was built with): the palette comes from
// the theme catalog, every layer draws from its own stream seeded by the
// slug, and fragments are joined in a fixed order. No clock and no real
// randomness are involved, so the same record always yields the same bytes.
//
// A Composer holds only read-only state and is safe for concurrent use.
package cover

import (
	"strings"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/layer"
	"github.com/roach88/covergen/internal/seed"
	"github.com/roach88/covergen/internal/theme"
)

// Composer builds documents from metadata.
type Composer struct {
	catalog *theme.Catalog
	canvas  layer.Canvas
	layers  []layer.Layer
}

// Option configures a Composer.
type Option func(*config)

type config struct {
	catalog *theme.Catalog
	opts    layer.Options
}

// WithCatalog replaces the builtin palette catalog.
func WithCatalog(c *theme.Catalog) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.catalog = c
		}
	}
}

// WithStars sets the starfield size. Negative values are ignored.
func WithStars(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.opts.Stars = n
		}
	}
}

// WithParticles sets the particle count. Negative values are ignored.
func WithParticles(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.opts.Particles = n
		}
	}
}

// New returns a Composer for the default 1920x1080 canvas.
func New(opts ...Option) *Composer {
	cfg := config{catalog: theme.Builtin(), opts: layer.DefaultOptions}
	for _, o := range opts {
		o(&cfg)
	}
	return &Composer{
		catalog: cfg.catalog,
		canvas:  layer.DefaultCanvas,
		layers:  layer.Stack(cfg.opts),
	}
}

var defaultComposer = New()

// Compose builds the canonical cover for m.
func Compose(m article.Metadata) *Document {
	return defaultComposer.Compose(m)
}

// Catalog returns the palette catalog in use.
func (c *Composer) Catalog() *theme.Catalog {
	return c.catalog
}

// Compose builds the cover for m. A blank slug is replaced by
// article.DefaultSlug; nothing else about m is altered.
func (c *Composer) Compose(m article.Metadata) *Document {
	slug := m.SlugOr(article.DefaultSlug)
	palette := c.catalog.Select(m)

	doc := &Document{
		Slug:      slug,
		Title:     m.Title,
		Theme:     palette.Name,
		Symbol:    layer.PickSymbol(seed.New(slug, layer.SymbolStream)).Kind(),
		Width:     c.canvas.Width,
		Height:    c.canvas.Height,
		Defs:      layer.Defs(palette),
		Fragments: make([]layer.Fragment, 0, len(c.layers)),
	}
	for _, l := range c.layers {
		stream := seed.New(slug, l.Stream)
		doc.Fragments = append(doc.Fragments, layer.Fragment{
			Name: l.Name,
			SVG:  l.Render(palette, stream, c.canvas),
		})
	}
	return doc
}

// sanitizeComment keeps text legal inside an XML comment: only XML 1.0
// characters, no "--" run and no trailing "-".
func sanitizeComment(s string) string {
	s = strings.Map(func(r rune) rune {
		if xmlChar(r) {
			return r
		}
		return -1
	}, strings.ToValidUTF8(s, ""))
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}

func xmlChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= 0x10FFFF
	}
}
