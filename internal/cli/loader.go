package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/config"
	"github.com/roach88/covergen/internal/cover"
	"github.com/roach88/covergen/internal/store"
	"github.com/roach88/covergen/internal/theme"
)

// composeFlags are shared by the commands that compose covers.
type composeFlags struct {
	Themes    string
	Stars     int
	Particles int
}

func (f *composeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Themes, "themes", "", "CUE theme catalog directory (default: built-in palettes)")
	cmd.Flags().IntVar(&f.Stars, "stars", 25, "starfield size")
	cmd.Flags().IntVar(&f.Particles, "particles", 20, "particle count")
}

// apply copies explicitly set flags over the config values.
func (f *composeFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("themes") {
		cfg.ThemesDir = f.Themes
	}
	if cmd.Flags().Changed("stars") {
		cfg.Stars = f.Stars
	}
	if cmd.Flags().Changed("particles") {
		cfg.Particles = f.Particles
	}
}

// loadConfig reads the --config file and COVERGEN_* environment.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// loadCatalog returns the CUE catalog in dir, or the built-in one when dir
// is empty.
func loadCatalog(dir string) (*theme.Catalog, error) {
	if dir == "" {
		return theme.Builtin(), nil
	}
	catalog, err := theme.LoadCatalog(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load themes", err)
	}
	return catalog, nil
}

// newComposer builds a composer from the effective config. The config is
// validated again since flags may have replaced its values.
func newComposer(cfg *config.Config) (*cover.Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid settings", err)
	}
	catalog, err := loadCatalog(cfg.ThemesDir)
	if err != nil {
		return nil, err
	}
	return cover.New(
		cover.WithCatalog(catalog),
		cover.WithStars(cfg.Stars),
		cover.WithParticles(cfg.Particles),
	), nil
}

// openStore opens the ledger, or returns nil when path is empty.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		return nil, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// commandError reports err as a JSON error response when JSON output is
// selected and passes it through unchanged.
func commandError(f *OutputFormatter, code string, err error) error {
	if f.JSON() {
		_ = f.Error(code, err.Error(), nil)
	}
	return err
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}
