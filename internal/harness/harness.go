package harness

import (
	"fmt"

	"github.com/roach88/covergen/internal/cover"
	"github.com/roach88/covergen/internal/theme"
)

// Run composes the scenario's article and evaluates its expectations and
// assertions. The error is non-nil only when the scenario could not be
// executed (for example, its theme catalog failed to load); failed
// expectations are reported on the Result.
func Run(scenario *Scenario) (*Result, error) {
	composer, err := composerFor(scenario)
	if err != nil {
		return nil, err
	}

	doc := composer.Compose(scenario.Article)

	result := NewResult()
	result.Document = doc
	result.Theme = doc.Theme
	result.Symbol = string(doc.Symbol)
	result.Digest = doc.Digest()
	for _, f := range doc.Fragments {
		result.Layers = append(result.Layers, f.Name)
	}

	for _, msg := range checkExpectation(result, scenario.Expect) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(doc, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func composerFor(s *Scenario) (*cover.Composer, error) {
	var opts []cover.Option
	if s.Themes != "" {
		catalog, err := theme.LoadCatalog(s.Themes)
		if err != nil {
			return nil, fmt.Errorf("load themes: %w", err)
		}
		opts = append(opts, cover.WithCatalog(catalog))
	}
	if s.Options != nil {
		if s.Options.Stars != nil {
			opts = append(opts, cover.WithStars(*s.Options.Stars))
		}
		if s.Options.Particles != nil {
			opts = append(opts, cover.WithParticles(*s.Options.Particles))
		}
	}
	return cover.New(opts...), nil
}

func checkExpectation(r *Result, e Expectation) []string {
	var errs []string
	if e.Theme != "" && e.Theme != r.Theme {
		errs = append(errs, fmt.Sprintf("theme: expected %q, got %q", e.Theme, r.Theme))
	}
	if e.Symbol != "" && e.Symbol != r.Symbol {
		errs = append(errs, fmt.Sprintf("symbol: expected %q, got %q", e.Symbol, r.Symbol))
	}
	if e.Layers != 0 && e.Layers != len(r.Layers) {
		errs = append(errs, fmt.Sprintf("layers: expected %d, got %d", e.Layers, len(r.Layers)))
	}
	if e.Digest != "" && e.Digest != r.Digest {
		errs = append(errs, fmt.Sprintf("digest: expected %s, got %s", e.Digest, r.Digest))
	}
	return errs
}
