package store

import "github.com/roach88/covergen/internal/article"

// Run is one generation run.
type Run struct {
	ID     string
	Seq    int64
	Source string
	Total  int
	Failed int
	// Finished is false for a run that was begun but never closed.
	Finished bool
}

// Cover is the baseline recorded for one slug.
type Cover struct {
	Slug     string
	RunID    string
	Seq      int64
	Metadata article.Metadata
	Theme    string
	Symbol   string
	Digest   string
	Size     int
}
