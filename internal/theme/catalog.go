// Package theme maps article metadata to a colour palette.
//
// A Catalog is an ordered keyword table plus a set of named palettes and an
// explicit default. Selection lowercases the article's searchable string
// (title, description, tags, slug) and returns the palette bound to the first
// keyword, in table order, that occurs in it. Table order is the tie-break:
// neither keyword length nor match position matters.
//
// Catalogs are read-only after construction and safe for concurrent use.
package theme

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/covergen/internal/article"
)

// KeywordRule binds a lowercase substring to a palette name.
type KeywordRule struct {
	Keyword string `json:"keyword"`
	Palette string `json:"palette"`
}

// Catalog is an immutable palette registry with its keyword table.
type Catalog struct {
	palettes map[string]Palette
	rules    []KeywordRule
	fallback string
}

// NewCatalog builds and validates a catalog. Keywords are normalised the
// same way as searchable strings.
func NewCatalog(palettes []Palette, rules []KeywordRule, fallback string) (*Catalog, error) {
	c := &Catalog{
		palettes: make(map[string]Palette, len(palettes)),
		rules:    make([]KeywordRule, 0, len(rules)),
		fallback: fallback,
	}
	for _, p := range palettes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.palettes[p.Name]; dup {
			return nil, fmt.Errorf("duplicate palette %q", p.Name)
		}
		c.palettes[p.Name] = p
	}
	if _, ok := c.palettes[fallback]; !ok {
		return nil, fmt.Errorf("default palette %q is not defined", fallback)
	}
	for i, r := range rules {
		kw := normalize(r.Keyword)
		if kw == "" {
			return nil, fmt.Errorf("keyword %d is empty", i)
		}
		if _, ok := c.palettes[r.Palette]; !ok {
			return nil, fmt.Errorf("keyword %q references unknown palette %q", r.Keyword, r.Palette)
		}
		c.rules = append(c.rules, KeywordRule{Keyword: kw, Palette: r.Palette})
	}
	return c, nil
}

var builtin = mustBuiltin()

func mustBuiltin() *Catalog {
	c, err := NewCatalog(builtinPalettes, builtinKeywords, DefaultName)
	if err != nil {
		panic(fmt.Sprintf("theme: builtin catalog: %v", err))
	}
	return c
}

// Builtin returns the canonical eight-palette catalog.
func Builtin() *Catalog {
	return builtin
}

// Select returns the builtin catalog's palette for m.
func Select(m article.Metadata) Palette {
	return builtin.Select(m)
}

// Select returns the palette bound to the first keyword contained in m's
// searchable string, or the default palette.
func (c *Catalog) Select(m article.Metadata) Palette {
	p, _ := c.Match(Searchable(m))
	return p
}

// Match walks the keyword table over an already-normalised searchable
// string. The returned rule is nil when the default palette was used.
func (c *Catalog) Match(searchable string) (Palette, *KeywordRule) {
	for i := range c.rules {
		if strings.Contains(searchable, c.rules[i].Keyword) {
			rule := c.rules[i]
			return c.palettes[rule.Palette], &rule
		}
	}
	return c.palettes[c.fallback], nil
}

// Palette looks a palette up by name.
func (c *Catalog) Palette(name string) (Palette, bool) {
	p, ok := c.palettes[name]
	return p, ok
}

// Default returns the fallback palette.
func (c *Catalog) Default() Palette {
	return c.palettes[c.fallback]
}

// Palettes returns all palettes sorted by name.
func (c *Catalog) Palettes() []Palette {
	out := make([]Palette, 0, len(c.palettes))
	for _, p := range c.palettes {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Rules returns a copy of the keyword table in match order.
func (c *Catalog) Rules() []KeywordRule {
	out := make([]KeywordRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Searchable builds the lowercase string keywords are matched against:
// title, description, the tags joined by spaces, and the slug, separated by
// single spaces. Categories are not part of it.
func Searchable(m article.Metadata) string {
	s := strings.Join([]string{
		m.Title,
		m.Description,
		strings.Join(m.Tags, " "),
		m.Slug,
	}, " ")
	return normalize(s)
}

// normalize applies NFC and full Unicode lowercasing. A fresh Caser is used
// per call since cases.Caser is not safe for concurrent use.
func normalize(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}
