// Package testutil holds article fixtures shared by tests across packages.
//
// Each fixture pins the palette, symbol and document digest its article
// composes to with the default composer. The digests change only when the
// output format changes on purpose.
package testutil

import "github.com/roach88/covergen/internal/article"

// Fixture is an article with its expected cover.
type Fixture struct {
	Name     string
	Metadata article.Metadata
	Theme    string
	Symbol   string
	Digest   string
}

// Fixtures is ordered by name.
var Fixtures = []Fixture{
	{
		Name:     "army-reform",
		Metadata: article.Metadata{Title: "Reforming the Army", Slug: "army-reform"},
		Theme:    "military",
		Symbol:   "burst",
		Digest:   "16f7f7e1c24b3a4df2b48952b35665c43932f80f0286f4a1c9487f058ff58336",
	},
	{
		Name: "democracy-transition",
		Metadata: article.Metadata{
			Title:       "The Long Transition",
			Description: "How regimes change",
			Tags:        article.StringList{"politics", "history"},
			Categories:  article.StringList{"essays"},
			Slug:        "democracy-transition",
		},
		Theme:  "democracy",
		Symbol: "diamond",
		Digest: "693666d061e480a3e108ffe2d901301d78d9b3d52f7b6fd8257a20ce6cd9bee5",
	},
	{
		Name: "freedom-of-speech",
		Metadata: article.Metadata{
			Title:       "Speech",
			Description: "On liberty",
			Tags:        article.StringList{"freedom"},
			Slug:        "freedom-of-speech",
		},
		Theme:  "freedom",
		Symbol: "arch",
		Digest: "c02d4f7f13279ecfae5b1fb055ad174be99115353e7c64a5217f9405b4cbd1de",
	},
	{
		Name: "french-revolution",
		Metadata: article.Metadata{
			Title:       "1789",
			Description: "Bread and barricades",
			Tags:        article.StringList{"revolution"},
			Slug:        "french-revolution",
		},
		Theme:  "revolution",
		Symbol: "rings",
		Digest: "8c03f73b77a2bce575bb5a377d22fd9e5ea7864e06ca147aa65c56b23b69dda9",
	},
	{
		Name:     "iran-history",
		Metadata: article.Metadata{Title: "تاریخ ایران", Slug: "iran-history"},
		Theme:    "history",
		Symbol:   "arch",
		Digest:   "e89f05531233652a7fdc79dd3cc6fa906208e08d489727ef26138a20da51a95a",
	},
	{
		Name:     "untitled",
		Metadata: article.Metadata{Slug: "untitled"},
		Theme:    "philosophy",
		Symbol:   "diamond",
		Digest:   "fe15ec8ea885df56554907a0a011f6cf0e0ca35e6a5ee7a2101eba3e123bc16d",
	},
}

// Articles returns the fixture metadata keyed by name.
func Articles() map[string]article.Metadata {
	out := make(map[string]article.Metadata, len(Fixtures))
	for _, f := range Fixtures {
		out[f.Name] = f.Metadata
	}
	return out
}

// Lookup returns the named fixture.
func Lookup(name string) (Fixture, bool) {
	for _, f := range Fixtures {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

// Records returns the fixture metadata in order, as a task file would list it.
func Records() []article.Metadata {
	out := make([]article.Metadata, len(Fixtures))
	for i, f := range Fixtures {
		out[i] = f.Metadata
	}
	return out
}
