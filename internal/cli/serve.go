package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr    string
	compose composeFlags
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve covers over HTTP",
		Long: `Compose covers on request.

Routes:
  GET  /healthz          liveness
  GET  /themes           palette catalog
  POST /covers           JSON metadata record in, SVG out
  GET  /covers/{slug}    query parameters title, description, tags

Every cover response carries X-Cover-Digest, X-Cover-Theme and
X-Cover-Symbol headers. The server stops on SIGINT or SIGTERM.

Examples:
  covergen serve
  covergen serve --addr 127.0.0.1:9000 --themes ./themes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	opts.compose.bind(cmd)

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return commandError(f, CodeConfig, err)
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = opts.Addr
	}
	opts.compose.apply(cmd, cfg)

	composer, err := newComposer(cfg)
	if err != nil {
		return commandError(f, CodeThemes, err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	h := server.NewHandler(composer, logger)
	if err := server.Serve(ctx, cfg.Addr, h.Routes(), logger); err != nil {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	return nil
}
