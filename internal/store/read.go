package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, source, total, failed, finished
		FROM runs
		WHERE id = ?
	`, id)

	var r Run
	if err := row.Scan(&r.ID, &r.Seq, &r.Source, &r.Total, &r.Failed, &r.Finished); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ReadRuns returns all runs ordered by seq.
func (s *Store) ReadRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, source, total, failed, finished
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seq, &r.Source, &r.Total, &r.Failed, &r.Finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadCover retrieves the baseline for a slug.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadCover(ctx context.Context, slug string) (Cover, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT slug, run_id, seq, metadata, theme, symbol, digest, size
		FROM covers
		WHERE slug = ?
	`, slug)

	return scanCoverRow(row)
}

// ReadCovers returns every baseline ordered by slug.
func (s *Store) ReadCovers(ctx context.Context) ([]Cover, error) {
	return s.queryCovers(ctx, `
		SELECT slug, run_id, seq, metadata, theme, symbol, digest, size
		FROM covers
		ORDER BY slug COLLATE BINARY ASC
	`)
}

// RunCovers returns the baselines last written by a run, in recording order.
func (s *Store) RunCovers(ctx context.Context, runID string) ([]Cover, error) {
	return s.queryCovers(ctx, `
		SELECT slug, run_id, seq, metadata, theme, symbol, digest, size
		FROM covers
		WHERE run_id = ?
		ORDER BY seq ASC, slug COLLATE BINARY ASC
	`, runID)
}

func (s *Store) queryCovers(ctx context.Context, query string, args ...any) ([]Cover, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query covers: %w", err)
	}
	defer rows.Close()

	covers := []Cover{}
	for rows.Next() {
		c, err := scanCover(rows)
		if err != nil {
			return nil, err
		}
		covers = append(covers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate covers: %w", err)
	}
	return covers, nil
}

// Baseline returns the recorded digest per slug.
func (s *Store) Baseline(ctx context.Context) (map[string]string, error) {
	covers, err := s.ReadCovers(ctx)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	out := make(map[string]string, len(covers))
	for _, c := range covers {
		out[c.Slug] = c.Digest
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCover(rows *sql.Rows) (Cover, error) {
	c, err := scanInto(rows)
	if err != nil {
		return Cover{}, fmt.Errorf("scan cover: %w", err)
	}
	return c, nil
}

// scanCoverRow leaves sql.ErrNoRows unwrapped for callers comparing it.
func scanCoverRow(row *sql.Row) (Cover, error) {
	return scanInto(row)
}

func scanInto(sc scanner) (Cover, error) {
	var c Cover
	var metaJSON string
	if err := sc.Scan(
		&c.Slug, &c.RunID, &c.Seq, &metaJSON, &c.Theme, &c.Symbol, &c.Digest, &c.Size,
	); err != nil {
		return Cover{}, err
	}
	meta, err := unmarshalMetadata(metaJSON)
	if err != nil {
		return Cover{}, err
	}
	c.Metadata = meta
	return c, nil
}
