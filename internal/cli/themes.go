package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/server"
)

// ThemesOptions holds flags for the themes command.
type ThemesOptions struct {
	*RootOptions
	Themes string
	Match  string
}

// ThemeMatch is the palette chosen for a piece of text.
type ThemeMatch struct {
	Text    string `json:"text"`
	Palette string `json:"palette"`
}

// NewThemesCommand creates the themes command.
func NewThemesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ThemesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List palettes and the keywords selecting them",
		Long: `List the palette catalog: every palette's colours and the keywords that
select it. Keywords are matched in table order against the lowercased
title, description, tags and slug; the first hit wins.

Examples:
  covergen themes
  covergen themes --themes ./themes --format json
  covergen themes --match "The French Revolution"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemes(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Themes, "themes", "", "CUE theme catalog directory (default: built-in palettes)")
	cmd.Flags().StringVar(&opts.Match, "match", "", "show the palette selected for this text")

	return cmd
}

func runThemes(opts *ThemesOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return commandError(f, CodeConfig, err)
	}
	if cmd.Flags().Changed("themes") {
		cfg.ThemesDir = opts.Themes
	}
	catalog, err := loadCatalog(cfg.ThemesDir)
	if err != nil {
		return commandError(f, CodeThemes, err)
	}

	if cmd.Flags().Changed("match") {
		match := ThemeMatch{
			Text:    opts.Match,
			Palette: catalog.Select(article.Metadata{Title: opts.Match}).Name,
		}
		if f.JSON() {
			return f.Success(match)
		}
		fmt.Fprintln(cmd.OutOrStdout(), match.Palette)
		return nil
	}

	desc := server.DescribeCatalog(catalog)
	if f.JSON() {
		return f.Success(desc)
	}

	w := cmd.OutOrStdout()
	for _, p := range desc.Palettes {
		marker := ""
		if p.Name == desc.Default {
			marker = " (default)"
		}
		fmt.Fprintf(w, "%s%s\n", p.Name, marker)
		fmt.Fprintf(w, "  colours:  %s\n", strings.Join(p.Colors(), " "))
		if len(p.Keywords) > 0 {
			fmt.Fprintf(w, "  keywords: %s\n", strings.Join(p.Keywords, ", "))
		}
	}
	return nil
}
