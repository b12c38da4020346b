package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/covergen/internal/article"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestCover creates a cover record with minimal required fields.
func createTestCover(slug, runID, digest string) Cover {
	return Cover{
		Slug:     slug,
		RunID:    runID,
		Metadata: article.Metadata{Title: "Title of " + slug, Slug: slug},
		Theme:    "philosophy",
		Symbol:   "rings",
		Digest:   digest,
		Size:     1234,
	}
}
