// Package frontmatter extracts article metadata from Markdown and MDX files.
//
// A file contributes a record when it starts with a YAML block fenced by
// "---" lines. Only the fields the cover composer understands are kept.
// A missing slug defaults to the file name without extension, and a missing
// description defaults to the first paragraph of the body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/roach88/covergen/internal/article"
)

// ErrNoFrontMatter is returned for files without a leading YAML block.
var ErrNoFrontMatter = errors.New("no front matter")

// Extensions lists the file suffixes Scan considers.
var Extensions = []string{".md", ".mdx"}

var fence = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*(?:\n|$)`)

// FileError reports a file that could not be turned into a record.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Result is the outcome of scanning a directory.
type Result struct {
	Records []article.Metadata
	Failed  []*FileError
}

// Scan walks root recursively and parses every Markdown or MDX file in
// lexical path order. Files that fail are collected in Result.Failed; only
// a missing or unreadable root is an error.
func Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)

	res := &Result{}
	for _, path := range paths {
		m, err := ParseFile(path)
		if err != nil {
			res.Failed = append(res.Failed, &FileError{Path: path, Err: err})
			continue
		}
		res.Records = append(res.Records, m)
	}
	return res, nil
}

// ParseFile reads and parses one file.
func ParseFile(path string) (article.Metadata, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return article.Metadata{}, err
	}
	return Parse(path, src)
}

// Parse extracts the record from src. The path supplies the default slug
// and is recorded as the record's source.
func Parse(path string, src []byte) (article.Metadata, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	loc := fence.FindSubmatchIndex(src)
	if loc == nil {
		return article.Metadata{}, ErrNoFrontMatter
	}
	header := src[loc[2]:loc[3]]
	body := src[loc[1]:]

	var doc yaml.Node
	if err := yaml.Unmarshal(header, &doc); err != nil {
		return article.Metadata{}, fmt.Errorf("front matter: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return article.Metadata{}, errors.New("front matter: not a mapping")
	}

	var m article.Metadata
	if err := doc.Content[0].Decode(&m); err != nil {
		return article.Metadata{}, fmt.Errorf("front matter: %w", err)
	}

	if !m.HasSlug() {
		m.Slug = stem(path)
	}
	if strings.TrimSpace(m.Description) == "" {
		m.Description = FirstParagraph(body)
	}
	m.Source = path
	return m, nil
}

// FirstParagraph returns the plain text of the first Markdown paragraph in
// body, with whitespace collapsed. MDX import and export statements are
// skipped.
func FirstParagraph(body []byte) string {
	body = stripMDXStatements(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	var out string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if p, ok := n.(*ast.Paragraph); ok {
			out = inlineText(p, body)
			if out != "" {
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripMDXStatements(body []byte) []byte {
	lines := strings.Split(string(body), "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ") {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}

func hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
