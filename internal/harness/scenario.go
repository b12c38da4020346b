package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/layer"
)

// Scenario defines one cover test case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Themes is an optional CUE catalog directory replacing the builtin
	// palettes. Relative paths are resolved against the scenario's base path.
	Themes string `yaml:"themes,omitempty"`

	// Options overrides layer counts.
	Options *ComposeOptions `yaml:"options,omitempty"`

	// Article is the metadata record to compose.
	Article article.Metadata `yaml:"article"`

	// Expect holds document-level expectations.
	Expect Expectation `yaml:"expect"`

	// Assertions validate individual fragments.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ComposeOptions mirrors the composer's layer options. Unset fields keep
// their defaults.
type ComposeOptions struct {
	Stars     *int `yaml:"stars,omitempty"`
	Particles *int `yaml:"particles,omitempty"`
}

// Expectation holds document-level expectations. Empty fields are not
// checked.
type Expectation struct {
	Theme  string `yaml:"theme,omitempty"`
	Symbol string `yaml:"symbol,omitempty"`
	// Layers is the expected fragment count; zero skips the check.
	Layers int    `yaml:"layers,omitempty"`
	Digest string `yaml:"digest,omitempty"`
}

func (e Expectation) empty() bool {
	return e == Expectation{}
}

// Assertion validates one layer fragment.
type Assertion struct {
	// Type specifies the assertion type:
	// - "fragment_contains": Layer fragment contains Text
	// - "fragment_excludes": Layer fragment does not contain Text
	// - "element_count": Layer fragment has Count <Element> tags
	// - "layer_order": Layers appear in the given relative order
	Type string `yaml:"type"`

	Layer   string   `yaml:"layer,omitempty"`
	Text    string   `yaml:"text,omitempty"`
	Element string   `yaml:"element,omitempty"`
	Count   int      `yaml:"count,omitempty"`
	Layers  []string `yaml:"layers,omitempty"`
}

// Assertion type constants.
const (
	AssertFragmentContains = "fragment_contains"
	AssertFragmentExcludes = "fragment_excludes"
	AssertElementCount     = "element_count"
	AssertLayerOrder       = "layer_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the themes path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Themes != "" && !filepath.IsAbs(scenario.Themes) && basePath != "" {
		scenario.Themes = filepath.Join(basePath, scenario.Themes)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes a scenario without validating file references.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Expect.empty() && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	if s.Themes != "" {
		if _, err := os.Stat(s.Themes); os.IsNotExist(err) {
			return fmt.Errorf("themes directory not found: %s", s.Themes)
		}
	}

	if s.Options != nil {
		if s.Options.Stars != nil && *s.Options.Stars < 0 {
			return fmt.Errorf("options.stars must be non-negative")
		}
		if s.Options.Particles != nil && *s.Options.Particles < 0 {
			return fmt.Errorf("options.particles must be non-negative")
		}
	}

	if s.Expect.Symbol != "" && !knownSymbol(s.Expect.Symbol) {
		return fmt.Errorf("expect.symbol: unknown symbol %q", s.Expect.Symbol)
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFragmentContains, AssertFragmentExcludes:
		if a.Layer == "" {
			return fmt.Errorf("assertions[%d]: layer is required for %s", index, a.Type)
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertElementCount:
		if a.Layer == "" {
			return fmt.Errorf("assertions[%d]: layer is required for element_count", index)
		}
		if a.Element == "" {
			return fmt.Errorf("assertions[%d]: element is required for element_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for element_count", index)
		}
	case AssertLayerOrder:
		if len(a.Layers) < 2 {
			return fmt.Errorf("assertions[%d]: layer_order needs at least two layers", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Layer != "" && !knownLayer(a.Layer) {
		return fmt.Errorf("assertions[%d]: unknown layer %q", index, a.Layer)
	}
	for _, name := range a.Layers {
		if !knownLayer(name) {
			return fmt.Errorf("assertions[%d]: unknown layer %q", index, name)
		}
	}

	return nil
}

func knownLayer(name string) bool {
	for _, n := range layer.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func knownSymbol(name string) bool {
	for _, k := range layer.SymbolKinds() {
		if string(k) == name {
			return true
		}
	}
	return false
}
