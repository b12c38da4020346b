package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/frontmatter"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Output string
	Strict bool // fail when any file could not be parsed
}

// ExtractFailure names a skipped file.
type ExtractFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ExtractResult summarises an extraction.
type ExtractResult struct {
	Output  string           `json:"output"`
	Records int              `json:"records"`
	Failed  []ExtractFailure `json:"failed"`
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract <content-dir>",
		Short: "Build a task file from article front matter",
		Long: `Scan a content directory for Markdown and MDX articles and write their
front matter as a task file for "generate".

Files are visited recursively in path order. The slug defaults to the file
name and the description to the first paragraph of the body. Files without
parseable front matter are reported and skipped.

Examples:
  covergen extract ./content/posts
  covergen extract ./content -o tasks.json --strict`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "cover-tasks.json", "task file to write")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any file is skipped")

	return cmd
}

func runExtract(opts *ExtractOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	scan, err := frontmatter.Scan(dir)
	if err != nil {
		return commandError(f, CodeExtractFailed, WrapExitError(ExitCommandError, "failed to scan content", err))
	}
	for _, fe := range scan.Failed {
		logger.Warn("skipping file", "path", fe.Path, "error", fe.Err)
	}

	if err := article.WriteTasks(opts.Output, scan.Records); err != nil {
		return commandError(f, CodeExtractFailed, WrapExitError(ExitCommandError, "failed to write tasks", err))
	}

	result := ExtractResult{
		Output:  opts.Output,
		Records: len(scan.Records),
		Failed:  make([]ExtractFailure, 0, len(scan.Failed)),
	}
	for _, fe := range scan.Failed {
		result.Failed = append(result.Failed, ExtractFailure{Path: fe.Path, Error: fe.Err.Error()})
	}

	var failure *CLIError
	if opts.Strict && len(result.Failed) > 0 {
		failure = &CLIError{
			Code:    CodeExtractFailed,
			Message: fmt.Sprintf("%d file(s) skipped", len(result.Failed)),
		}
	}

	if f.JSON() {
		if err := f.Report(result, failure); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fail := range result.Failed {
			fmt.Fprintf(w, "✗ %s\n", fail.Path)
			fmt.Fprintf(w, "  %s\n", fail.Error)
		}
		fmt.Fprintf(w, "Extracted %d record(s) to %s (%d skipped)\n", result.Records, result.Output, len(result.Failed))
	}

	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}
