package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/batch"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	OutputDir string
	Workers   int
	Database  string
	compose   composeFlags
}

// GenerateRecord is the outcome for one task record.
type GenerateRecord struct {
	Position int    `json:"position"`
	Slug     string `json:"slug"`
	Theme    string `json:"theme,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Path     string `json:"path,omitempty"`
	Digest   string `json:"digest,omitempty"`
	Size     int    `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GenerateResult summarises a generate run.
type GenerateResult struct {
	RunID   string           `json:"run_id"`
	Records []GenerateRecord `json:"records"`
	Written int              `json:"written"`
	Failed  int              `json:"failed"`
	Total   int              `json:"total"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <tasks.json>",
		Short: "Generate covers for a task file",
		Long: `Generate an SVG cover for every record of a task file.

The task file is a JSON array of article metadata records (see "extract").
Each cover is written as {slug}-cover.svg. A record that fails is reported
and its siblings are still generated. With --db every written cover's
digest is recorded as the baseline for "verify".

Exit codes:
  0 - All covers written
  1 - One or more records failed
  2 - Command error (unreadable task file, bad catalog, etc.)

Examples:
  covergen generate cover-tasks.json
  covergen generate cover-tasks.json -o public/covers --workers 4
  covergen generate cover-tasks.json --db covers.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "covers", "output directory")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent workers (0 = one per CPU)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record digests in this SQLite ledger")
	opts.compose.bind(cmd)

	return cmd
}

func runGenerate(opts *GenerateOptions, tasksPath string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return commandError(f, CodeConfig, err)
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = opts.OutputDir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if cmd.Flags().Changed("db") {
		cfg.DB = opts.Database
	}
	opts.compose.apply(cmd, cfg)

	composer, err := newComposer(cfg)
	if err != nil {
		return commandError(f, CodeThemes, err)
	}

	tasks, err := article.LoadTasks(tasksPath)
	if err != nil {
		return commandError(f, CodeTasks, WrapExitError(ExitCommandError, "failed to load tasks", err))
	}
	logger.Debug("tasks loaded", "path", tasksPath, "records", len(tasks))

	st, err := openStore(cfg.DB)
	if err != nil {
		return commandError(f, CodeStore, err)
	}
	runOpts := batch.Options{
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Composer:  composer,
		Logger:    logger,
	}
	if st != nil {
		defer st.Close()
		runOpts.Ledger = st
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	summary, err := batch.NewRunner(runOpts).Run(ctx, tasks, tasksPath)
	if err != nil {
		return commandError(f, CodeGenerateFailed, WrapExitError(ExitCommandError, "generation failed", err))
	}

	result := newGenerateResult(summary)
	if f.JSON() {
		return outputGenerateJSON(f, result)
	}
	return outputGenerateText(cmd, result)
}

func newGenerateResult(s *batch.Summary) GenerateResult {
	result := GenerateResult{
		RunID:   s.RunID,
		Records: make([]GenerateRecord, 0, len(s.Results)),
		Written: s.Written,
		Failed:  s.Failed,
		Total:   len(s.Results),
	}
	for _, r := range s.Results {
		rec := GenerateRecord{
			Position: r.Position,
			Slug:     r.Slug,
			Theme:    r.Theme,
			Symbol:   r.Symbol,
			Path:     r.Path,
			Digest:   r.Digest,
			Size:     r.Size,
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		result.Records = append(result.Records, rec)
	}
	return result
}

func outputGenerateJSON(f *OutputFormatter, result GenerateResult) error {
	var failure *CLIError
	if result.Failed > 0 {
		failure = &CLIError{
			Code:    CodeGenerateFailed,
			Message: fmt.Sprintf("%d record(s) failed", result.Failed),
		}
	}
	if err := f.Report(result, failure); err != nil {
		return err
	}
	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}

func outputGenerateText(cmd *cobra.Command, result GenerateResult) error {
	w := cmd.OutOrStdout()

	for _, rec := range result.Records {
		if rec.Error != "" {
			fmt.Fprintf(w, "✗ %s\n", rec.Slug)
			fmt.Fprintf(w, "  %s\n", rec.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s/%s) → %s\n", rec.Slug, rec.Theme, rec.Symbol, rec.Path)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generate Summary: %d written, %d failed, %d total\n", result.Written, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d record(s) failed", result.Failed))
	}
	return nil
}
