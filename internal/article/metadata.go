// Package article defines the metadata record a cover is generated from.
//
// Records arrive as JSON (task files, HTTP bodies) or YAML (front matter).
// Both decoders accept tags and categories either as a list or as a single
// string, and neither ever fails on a missing optional field.
package article

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSlug is used when a record carries no usable slug.
const DefaultSlug = "untitled"

// Metadata is the immutable input of the cover composer.
type Metadata struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Tags        StringList `json:"tags,omitempty" yaml:"tags,omitempty"`
	Categories  StringList `json:"categories,omitempty" yaml:"categories,omitempty"`
	Slug        string     `json:"slug" yaml:"slug"`

	// Lang and Source are carried through task files for the caller; the
	// composer ignores them.
	Lang   string `json:"lang,omitempty" yaml:"lang,omitempty"`
	Source string `json:"source_file,omitempty" yaml:"-"`
}

// HasSlug reports whether the record names a non-blank slug.
func (m Metadata) HasSlug() bool {
	return strings.TrimSpace(m.Slug) != ""
}

// SlugOr returns the record's slug, or fallback if it is blank.
func (m Metadata) SlugOr(fallback string) string {
	if m.HasSlug() {
		return m.Slug
	}
	return fallback
}

// WithSlug returns a copy of m carrying slug.
func (m Metadata) WithSlug(slug string) Metadata {
	m.Slug = slug
	return m
}

// StringList is an ordered list of strings that also decodes from a scalar.
type StringList []string

// UnmarshalJSON accepts a string, a list of scalars, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := toStringList(raw)
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out, err := toStringList(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = out
	return nil
}

func toStringList(raw any) (StringList, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return StringList{v}, nil
	case []any:
		out := make(StringList, 0, len(v))
		for i, elem := range v {
			s, err := scalarString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		s, err := scalarString(v)
		if err != nil {
			return nil, err
		}
		return StringList{s}, nil
	}
}

func scalarString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(s), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}
