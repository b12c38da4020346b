package store

import (
	"context"
	"errors"
	"fmt"
)

// BeginRun inserts a run record and assigns it the next seq.
// Uses ON CONFLICT(id) DO NOTHING for idempotency; the stored run is
// returned either way.
func (s *Store) BeginRun(ctx context.Context, id, source string) (Run, error) {
	if id == "" {
		return Run{}, errors.New("begin run: empty id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, source)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?)
		ON CONFLICT(id) DO NOTHING
	`, id, source)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	return s.ReadRun(ctx, id)
}

// FinishRun records the outcome counts of a run.
func (s *Store) FinishRun(ctx context.Context, id string, total, failed int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET total = ?, failed = ?, finished = 1
		WHERE id = ?
	`, total, failed, id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: unknown run %q", id)
	}
	return nil
}

// WriteCover records c as the baseline for its slug, replacing any earlier
// baseline. The cover's seq is assigned by the store and returned.
//
// Note: The run referenced by RunID must exist (foreign key constraint).
func (s *Store) WriteCover(ctx context.Context, c Cover) (int64, error) {
	if c.Slug == "" {
		return 0, errors.New("write cover: empty slug")
	}
	meta, err := marshalMetadata(c.Metadata)
	if err != nil {
		return 0, fmt.Errorf("write cover: %w", err)
	}

	var seq int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO covers (slug, run_id, seq, metadata, theme, symbol, digest, size)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM covers), ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			run_id = excluded.run_id,
			seq = excluded.seq,
			metadata = excluded.metadata,
			theme = excluded.theme,
			symbol = excluded.symbol,
			digest = excluded.digest,
			size = excluded.size
		RETURNING seq
	`,
		c.Slug,
		c.RunID,
		meta,
		c.Theme,
		c.Symbol,
		c.Digest,
		c.Size,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("write cover: %w", err)
	}
	return seq, nil
}
