package frontmatter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covergen/internal/article"
)

func TestParse_Fields(t *testing.T) {
	src := `---
title: The Long Transition
description: How regimes change
lang: en
tags: [politics, history]
categories: essays
slug: democracy-transition
author: ignored
---

Body text.
`
	m, err := Parse("posts/transition.mdx", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, article.Metadata{
		Title:       "The Long Transition",
		Description: "How regimes change",
		Lang:        "en",
		Tags:        article.StringList{"politics", "history"},
		Categories:  article.StringList{"essays"},
		Slug:        "democracy-transition",
		Source:      "posts/transition.mdx",
	}, m)
}

func TestParse_SlugFromFileName(t *testing.T) {
	m, err := Parse("content/fa/iran-history.mdx", []byte("---\ntitle: تاریخ ایران\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "iran-history", m.Slug)
	assert.Equal(t, "تاریخ ایران", m.Title)
}

func TestParse_DescriptionFromBody(t *testing.T) {
	src := `---
title: Notes
---
import Chart from "../components/Chart"
export const meta = {}

# Heading

<Chart data={points} />

First *real* paragraph
spans two lines with ` + "`code`" + `.

Second paragraph.
`
	m, err := Parse("notes.mdx", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "First real paragraph spans two lines with code.", m.Description)
}

func TestParse_CRLF(t *testing.T) {
	m, err := Parse("a.md", []byte("---\r\ntitle: Windows\r\nslug: win\r\n---\r\nBody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Windows", m.Title)
	assert.Equal(t, "win", m.Slug)
	assert.Equal(t, "Body", m.Description)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no front matter", "# Just markdown\n"},
		{"not a mapping", "---\n- a\n- b\n---\n"},
		{"bad yaml", "---\ntitle: [unterminated\n---\n"},
		{"unclosed", "---\ntitle: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x.md", []byte(tt.src))
			assert.Error(t, err)
		})
	}

	_, err := Parse("x.md", []byte("no fence"))
	assert.True(t, errors.Is(err, ErrNoFrontMatter))
}

func TestFirstParagraph_Empty(t *testing.T) {
	assert.Equal(t, "", FirstParagraph([]byte("# Only a heading\n")))
	assert.Equal(t, "", FirstParagraph(nil))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("b/second.mdx", "---\ntitle: Second\n---\n")
	write("a/first.md", "---\ntitle: First\n---\n")
	write("a/broken.mdx", "no front matter here")
	write("a/skip.txt", "---\ntitle: Ignored\n---\n")

	res, err := Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "first", res.Records[0].Slug)
	assert.Equal(t, "second", res.Records[1].Slug)

	require.Len(t, res.Failed, 1)
	assert.Equal(t, filepath.Join(root, "a", "broken.mdx"), res.Failed[0].Path)
	assert.ErrorIs(t, res.Failed[0], ErrNoFrontMatter)
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
