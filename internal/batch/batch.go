// Package batch generates covers for a list of task records.
//
// Records are composed independently on a bounded pool of workers and
// written as "{slug}-cover.svg" into the output directory. A failure is
// confined to its record: it is reported on that record's Result and never
// stops the siblings. When a ledger is configured, every written cover is
// recorded as the new baseline for its slug once the pool has drained.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/cover"
	"github.com/roach88/covergen/internal/store"
)

// Ledger records generation runs. *store.Store satisfies it.
type Ledger interface {
	BeginRun(ctx context.Context, id, source string) (store.Run, error)
	WriteCover(ctx context.Context, c store.Cover) (int64, error)
	FinishRun(ctx context.Context, id string, total, failed int) error
}

// Options configures a Runner.
type Options struct {
	// OutputDir receives the SVG files. It is created if missing.
	OutputDir string
	// Workers bounds concurrency. Zero or less means runtime.NumCPU().
	Workers int
	// Composer defaults to cover.New().
	Composer *cover.Composer
	// Ledger is optional.
	Ledger Ledger
	// IDs defaults to UUIDv7Generator.
	IDs    IDGenerator
	Logger *slog.Logger
}

// Result is the outcome for one record.
type Result struct {
	Position int    `json:"position"`
	Slug     string `json:"slug"`
	Theme    string `json:"theme,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Path     string `json:"path,omitempty"`
	Digest   string `json:"digest,omitempty"`
	Size     int    `json:"size,omitempty"`
	Err      error  `json:"-"`

	metadata article.Metadata
}

// OK reports whether the cover was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary is the outcome of a run.
type Summary struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
	Written int      `json:"written"`
	Failed  int      `json:"failed"`
}

// Errors returns the per-record failures in record order.
func (s *Summary) Errors() []error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Runner executes batches.
type Runner struct {
	opts Options
}

// NewRunner applies defaults to opts.
func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Composer == nil {
		opts.Composer = cover.New()
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7Generator{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Runner{opts: opts}
}

// Run generates a cover for every task. source names the task file for
// the ledger. The returned error is non-nil only when the run as a whole
// could not proceed (output directory or ledger unavailable); record
// failures are reported in the Summary.
func (r *Runner) Run(ctx context.Context, tasks []article.Task, source string) (*Summary, error) {
	if err := os.MkdirAll(r.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	sum := &Summary{
		RunID:   r.opts.IDs.Generate(),
		Results: make([]Result, len(tasks)),
	}
	log := r.opts.Logger.With("run", sum.RunID)

	if r.opts.Ledger != nil {
		if _, err := r.opts.Ledger.BeginRun(ctx, sum.RunID, source); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
	}

	jobs := r.prepare(tasks, sum.Results)
	r.compose(ctx, jobs, sum.Results, log)

	for i := range sum.Results {
		res := &sum.Results[i]
		if res.Err == nil && r.opts.Ledger != nil {
			if err := r.record(ctx, sum.RunID, *res); err != nil {
				res.Err = &RecordError{Position: res.Position, Slug: res.Slug, Err: err}
			}
		}
		if res.Err != nil {
			sum.Failed++
			log.Warn("cover failed", "position", res.Position, "slug", res.Slug, "error", res.Err)
			continue
		}
		sum.Written++
	}

	if r.opts.Ledger != nil {
		if err := r.opts.Ledger.FinishRun(ctx, sum.RunID, len(tasks), sum.Failed); err != nil {
			return sum, fmt.Errorf("ledger: %w", err)
		}
	}

	log.Info("batch complete", "written", sum.Written, "failed", sum.Failed)
	return sum, nil
}

// prepare resolves slugs and rejects undecodable and duplicate records.
// It returns the indices of the records to compose.
func (r *Runner) prepare(tasks []article.Task, results []Result) []int {
	claimed := make(map[string]int, len(tasks))
	jobs := make([]int, 0, len(tasks))
	for i, t := range tasks {
		pos := t.Position
		if pos == 0 {
			pos = i + 1
		}
		m := t.Metadata.WithSlug(t.Metadata.SlugOr(article.PlaceholderSlug(pos)))
		res := &results[i]
		res.Position = pos
		res.Slug = m.Slug
		res.metadata = m

		if t.Err != nil {
			res.Err = &RecordError{Position: pos, Err: t.Err}
			continue
		}
		if !safeSlug(m.Slug) {
			res.Err = &RecordError{Position: pos, Slug: m.Slug, Err: ErrUnsafeSlug}
			continue
		}
		if first, ok := claimed[m.Slug]; ok {
			res.Err = &RecordError{
				Position: pos,
				Slug:     m.Slug,
				Err:      fmt.Errorf("%w: first used by record %d", ErrDuplicateSlug, first),
			}
			continue
		}
		claimed[m.Slug] = pos
		jobs = append(jobs, i)
	}
	return jobs
}

func (r *Runner) compose(ctx context.Context, jobs []int, results []Result, log *slog.Logger) {
	queue := make(chan int)
	var wg sync.WaitGroup

	workers := r.opts.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				r.generate(ctx, &results[i], log)
			}
		}()
	}

	for _, i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
}

// generate composes and writes one cover. Each worker owns distinct
// Result slots, so no locking is needed.
func (r *Runner) generate(ctx context.Context, res *Result, log *slog.Logger) {
	if err := ctx.Err(); err != nil {
		res.Err = &RecordError{Position: res.Position, Slug: res.Slug, Err: err}
		return
	}

	doc := r.opts.Composer.Compose(res.metadata)
	data := doc.Bytes()
	path := filepath.Join(r.opts.OutputDir, doc.FileName())
	if err := writeFile(path, data); err != nil {
		res.Err = &RecordError{Position: res.Position, Slug: res.Slug, Err: err}
		return
	}

	res.Theme = doc.Theme
	res.Symbol = string(doc.Symbol)
	res.Path = path
	res.Digest = doc.Digest()
	res.Size = len(data)
	log.Debug("cover written", "slug", res.Slug, "theme", res.Theme, "symbol", res.Symbol, "path", path)
}

func (r *Runner) record(ctx context.Context, runID string, res Result) error {
	_, err := r.opts.Ledger.WriteCover(ctx, store.Cover{
		Slug:     res.Slug,
		RunID:    runID,
		Metadata: res.metadata,
		Theme:    res.Theme,
		Symbol:   res.Symbol,
		Digest:   res.Digest,
		Size:     res.Size,
	})
	return err
}

func safeSlug(slug string) bool {
	return slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`+"\x00")
}

// writeFile replaces path atomically so readers never see a partial cover.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cover-*.svg")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
