package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/batch"
	"github.com/roach88/covergen/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Database string
	compose  composeFlags
}

// VerifyCheck is the JSON form of one check.
type VerifyCheck struct {
	Position int    `json:"position"`
	Slug     string `json:"slug"`
	Status   string `json:"status"`
	Want     string `json:"want,omitempty"`
	Got      string `json:"got,omitempty"`
	Error    string `json:"error,omitempty"`
}

// VerifyResult summarises a verification.
type VerifyResult struct {
	Checks     []VerifyCheck `json:"checks"`
	Matched    int           `json:"matched"`
	Mismatched int           `json:"mismatched"`
	Missing    int           `json:"missing"`
	Invalid    int           `json:"invalid"`
	Total      int           `json:"total"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [tasks.json]",
		Short: "Check covers against recorded digests",
		Long: `Recompose covers and compare their digests with the baselines recorded
by "generate --db".

With a task file every record in it is checked. Without one, every cover
in the ledger is recomposed from its stored metadata.

Exit codes:
  0 - Every cover matches its baseline
  1 - A cover changed, has no baseline, or its record is invalid
  2 - Command error (database not found, etc.)

Examples:
  covergen verify --db covers.db
  covergen verify cover-tasks.json --db covers.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasksPath := ""
			if len(args) == 1 {
				tasksPath = args[0]
			}
			return runVerify(opts, tasksPath, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite ledger holding the baselines (required unless set in config)")
	opts.compose.bind(cmd)

	return cmd
}

func runVerify(opts *VerifyOptions, tasksPath string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return commandError(f, CodeConfig, err)
	}
	if cmd.Flags().Changed("db") {
		cfg.DB = opts.Database
	}
	opts.compose.apply(cmd, cfg)
	if cfg.DB == "" {
		return commandError(f, CodeStore, NewExitError(ExitCommandError, "--db is required"))
	}

	composer, err := newComposer(cfg)
	if err != nil {
		return commandError(f, CodeThemes, err)
	}

	st, err := openStore(cfg.DB)
	if err != nil {
		return commandError(f, CodeStore, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	baseline, err := st.Baseline(ctx)
	if err != nil {
		return commandError(f, CodeStore, WrapExitError(ExitCommandError, "failed to read baseline", err))
	}

	var tasks []article.Task
	if tasksPath != "" {
		tasks, err = article.LoadTasks(tasksPath)
		if err != nil {
			return commandError(f, CodeTasks, WrapExitError(ExitCommandError, "failed to load tasks", err))
		}
	} else {
		tasks, err = storedTasks(cmd, st)
		if err != nil {
			return commandError(f, CodeStore, err)
		}
	}
	logger.Debug("verifying covers", "records", len(tasks), "baselines", len(baseline))

	report := batch.Verify(composer, tasks, baseline)
	result := newVerifyResult(report)

	var failure *CLIError
	if !report.OK() {
		failure = &CLIError{
			Code:    CodeVerifyFailed,
			Message: fmt.Sprintf("%d of %d cover(s) failed verification", result.Total-result.Matched, result.Total),
		}
	}

	if f.JSON() {
		if err := f.Report(result, failure); err != nil {
			return err
		}
	} else {
		outputVerifyText(cmd, result)
	}

	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}

// storedTasks rebuilds task records from the ledger in slug order.
func storedTasks(cmd *cobra.Command, st *store.Store) ([]article.Task, error) {
	covers, err := st.ReadCovers(cmd.Context())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read covers", err)
	}
	tasks := make([]article.Task, len(covers))
	for i, c := range covers {
		tasks[i] = article.Task{Position: i + 1, Metadata: c.Metadata}
	}
	return tasks, nil
}

func newVerifyResult(r *batch.Report) VerifyResult {
	result := VerifyResult{
		Checks:     make([]VerifyCheck, 0, len(r.Checks)),
		Matched:    r.Matched,
		Mismatched: r.Mismatch,
		Missing:    r.Missing,
		Invalid:    r.Invalid,
		Total:      len(r.Checks),
	}
	for _, c := range r.Checks {
		vc := VerifyCheck{
			Position: c.Position,
			Slug:     c.Slug,
			Status:   string(c.Status),
			Want:     c.Want,
			Got:      c.Got,
		}
		if c.Err != nil {
			vc.Error = c.Err.Error()
		}
		result.Checks = append(result.Checks, vc)
	}
	return result
}

func outputVerifyText(cmd *cobra.Command, result VerifyResult) {
	w := cmd.OutOrStdout()

	for _, c := range result.Checks {
		switch batch.Status(c.Status) {
		case batch.StatusMatch:
			fmt.Fprintf(w, "✓ %s\n", c.Slug)
		case batch.StatusMismatch:
			fmt.Fprintf(w, "✗ %s\n", c.Slug)
			fmt.Fprintf(w, "  Expected: %s\n", c.Want)
			fmt.Fprintf(w, "  Actual:   %s\n", c.Got)
		case batch.StatusMissing:
			fmt.Fprintf(w, "✗ %s\n", c.Slug)
			fmt.Fprintln(w, "  No baseline recorded")
		case batch.StatusInvalid:
			fmt.Fprintf(w, "✗ %s\n", c.Slug)
			fmt.Fprintf(w, "  %s\n", c.Error)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Verify Summary: %d matched, %d mismatched, %d missing, %d invalid, %d total\n",
		result.Matched, result.Mismatched, result.Missing, result.Invalid, result.Total)
	if result.Matched == result.Total {
		fmt.Fprintln(w, "✓ All covers match their baselines")
	}
}
