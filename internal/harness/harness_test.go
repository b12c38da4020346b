package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covergen/internal/article"
)

func TestRun_Scenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err, file)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_ReportsExpectationFailures(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "every expectation is wrong",
		Article:     article.Metadata{Slug: "democracy-transition"},
		Expect: Expectation{
			Theme:  "military",
			Symbol: "rings",
			Layers: 3,
			Digest: "0000",
		},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `theme: expected "military", got "democracy"`)
	assert.Contains(t, result.Errors[1], `symbol: expected "rings", got "diamond"`)
	assert.Contains(t, result.Errors[2], "layers: expected 3, got 8")
	assert.Contains(t, result.Errors[3], "digest")
}

func TestRun_Options(t *testing.T) {
	stars, particles := 4, 0
	scenario := &Scenario{
		Name:        "sparse",
		Description: "fewer stars, no particles",
		Options:     &ComposeOptions{Stars: &stars, Particles: &particles},
		Article:     article.Metadata{Slug: "sparse"},
		Assertions: []Assertion{
			{Type: AssertElementCount, Layer: "starfield", Element: "circle", Count: 4},
			{Type: AssertElementCount, Layer: "particles", Element: "circle", Count: 0},
		},
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Themes(t *testing.T) {
	dir := t.TempDir()
	catalog := `
palette: mono: {
	bg_start: "#000000"
	bg_mid:   "#111111"
	bg_end:   "#222222"
	accent:   "#333333"
	accent2:  "#444444"
	glow:     "#555555"
	particle: "#666666"
}
default: "mono"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes.cue"), []byte(catalog), 0644))

	scenario := &Scenario{
		Name:        "mono",
		Description: "custom catalog",
		Themes:      dir,
		Article:     article.Metadata{Title: "Revolution", Slug: "mono"},
		Expect:      Expectation{Theme: "mono"},
		Assertions: []Assertion{
			{Type: AssertFragmentContains, Layer: "particles", Text: `fill="#666666"`},
		},
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ThemesLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes.cue"), []byte(`default: 5`), 0644))

	_, err := Run(&Scenario{Name: "bad", Description: "bad", Themes: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load themes")
}

func TestGolden_UpdateAndCompare(t *testing.T) {
	scenarioFile := filepath.Join(t.TempDir(), "case.yaml")
	goldenPath := GoldenPath(scenarioFile)
	assert.Equal(t, filepath.Join(filepath.Dir(scenarioFile), "golden", "case.golden"), goldenPath)

	result, err := Run(&Scenario{Name: "case", Description: "d", Article: article.Metadata{Slug: "case"}})
	require.NoError(t, err)

	_, err = CompareGolden(goldenPath, result)
	assert.Error(t, err, "missing golden file")

	require.NoError(t, UpdateGolden(goldenPath, result))
	match, err := CompareGolden(goldenPath, result)
	require.NoError(t, err)
	assert.True(t, match)

	other, err := Run(&Scenario{Name: "case", Description: "d", Article: article.Metadata{Slug: "other"}})
	require.NoError(t, err)
	match, err = CompareGolden(goldenPath, other)
	require.NoError(t, err)
	assert.False(t, match)
}
