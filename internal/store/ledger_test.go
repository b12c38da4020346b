package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covergen/internal/article"
)

func TestBeginRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r1, err := s.BeginRun(ctx, "run-1", "tasks.json")
	require.NoError(t, err)
	r2, err := s.BeginRun(ctx, "run-2", "tasks.json")
	require.NoError(t, err)

	assert.Equal(t, int64(1), r1.Seq)
	assert.Equal(t, int64(2), r2.Seq)
	assert.False(t, r1.Finished)

	again, err := s.BeginRun(ctx, "run-1", "other.json")
	require.NoError(t, err)
	assert.Equal(t, r1, again)
}

func TestBeginRun_EmptyID(t *testing.T) {
	s := createTestStore(t)
	_, err := s.BeginRun(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.BeginRun(ctx, "run-1", "tasks.json")
	require.NoError(t, err)
	require.NoError(t, s.FinishRun(ctx, "run-1", 10, 2))

	r, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 10, r.Total)
	assert.Equal(t, 2, r.Failed)
	assert.True(t, r.Finished)

	assert.Error(t, s.FinishRun(ctx, "missing", 1, 0))
}

func TestWriteCover_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.BeginRun(ctx, "run-1", "tasks.json")
	require.NoError(t, err)

	c := createTestCover("iran-history", "run-1", "abc")
	c.Metadata.Title = "تاریخ ایران"
	c.Metadata.Tags = article.StringList{"history", "<b>"}
	seq, err := s.WriteCover(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	got, err := s.ReadCover(ctx, "iran-history")
	require.NoError(t, err)
	c.Seq = seq
	assert.Equal(t, c, got)
}

func TestWriteCover_ReplacesBaseline(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.BeginRun(ctx, "run-1", "a.json")
	require.NoError(t, err)
	_, err = s.BeginRun(ctx, "run-2", "b.json")
	require.NoError(t, err)

	_, err = s.WriteCover(ctx, createTestCover("x", "run-1", "old"))
	require.NoError(t, err)
	_, err = s.WriteCover(ctx, createTestCover("y", "run-1", "kept"))
	require.NoError(t, err)
	seq, err := s.WriteCover(ctx, createTestCover("x", "run-2", "new"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)

	baseline, err := s.Baseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "new", "y": "kept"}, baseline)

	run1, err := s.RunCovers(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, run1, 1)
	assert.Equal(t, "y", run1[0].Slug)
}

func TestWriteCover_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	_, err := s.WriteCover(context.Background(), createTestCover("x", "missing", "d"))
	assert.Error(t, err, "foreign key must reject unknown run")
}

func TestWriteCover_EmptySlug(t *testing.T) {
	s := createTestStore(t)
	_, err := s.WriteCover(context.Background(), createTestCover("", "run", "d"))
	assert.Error(t, err)
}

func TestReadCover_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadCover(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestReadCovers_OrderedBySlug(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.BeginRun(ctx, "run-1", "tasks.json")
	require.NoError(t, err)
	for _, slug := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.WriteCover(ctx, createTestCover(slug, "run-1", slug))
		require.NoError(t, err)
	}

	covers, err := s.ReadCovers(ctx)
	require.NoError(t, err)
	require.Len(t, covers, 3)
	assert.Equal(t, "alpha", covers[0].Slug)
	assert.Equal(t, "bravo", covers[1].Slug)
	assert.Equal(t, "charlie", covers[2].Slug)

	byRun, err := s.RunCovers(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "charlie", byRun[0].Slug)
}

func TestReadRuns_Empty(t *testing.T) {
	s := createTestStore(t)
	runs, err := s.ReadRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestMarshalMetadata_NoHTMLEscape(t *testing.T) {
	out, err := marshalMetadata(article.Metadata{Title: "<a & b>"})
	require.NoError(t, err)
	assert.Contains(t, out, "<a & b>")

	m, err := unmarshalMetadata(out)
	require.NoError(t, err)
	assert.Equal(t, "<a & b>", m.Title)

	empty, err := unmarshalMetadata("")
	require.NoError(t, err)
	assert.Equal(t, article.Metadata{}, empty)
}
