package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/cover"
	"github.com/roach88/covergen/internal/testutil"
)

const sampleTasks = `[
  {"title": "The Long Transition", "description": "How regimes change", "tags": ["politics", "history"], "categories": ["essays"], "slug": "democracy-transition"},
  {"title": "No slug here"},
  {"title": 5, "slug": "broken"}
]`

func writeTasksFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cover-tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, sampleTasks)
	out := filepath.Join(dir, "covers")

	output, err := executeCommand(t, "generate", tasks, "-o", out, "--workers", "2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 record(s) failed")

	assert.Contains(t, output, "✓ democracy-transition (democracy/diamond)")
	assert.Contains(t, output, "✓ cover-2")
	assert.Contains(t, output, "✗ broken")
	assert.Contains(t, output, "Generate Summary: 2 written, 1 failed, 3 total")

	data, err := os.ReadFile(filepath.Join(out, "democracy-transition-cover.svg"))
	require.NoError(t, err)
	assert.Equal(t, "693666d061e480a3e108ffe2d901301d78d9b3d52f7b6fd8257a20ce6cd9bee5", cover.DigestBytes(data))
	assert.FileExists(t, filepath.Join(out, "cover-2-cover.svg"))
	assert.NoFileExists(t, filepath.Join(out, "broken-cover.svg"))
}

func TestGenerateCommandJSON(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, sampleTasks)

	output, err := executeCommand(t, "--format", "json", "generate", tasks, "-o", filepath.Join(dir, "covers"))
	require.Error(t, err)

	var response struct {
		Status string         `json:"status"`
		Data   GenerateResult `json:"data"`
		Error  *CLIError      `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, CodeGenerateFailed, response.Error.Code)
	assert.Equal(t, 2, response.Data.Written)
	assert.Equal(t, 1, response.Data.Failed)
	assert.NotEmpty(t, response.Data.RunID)
	require.Len(t, response.Data.Records, 3)
	assert.Equal(t, "democracy", response.Data.Records[0].Theme)
	assert.Contains(t, response.Data.Records[2].Error, "record 3")
}

func TestGenerateCommandAllWritten(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[{"title": "Reforming the Army", "slug": "army-reform"}]`)

	output, err := executeCommand(t, "generate", tasks, "-o", filepath.Join(dir, "covers"), "--stars", "3")
	require.NoError(t, err)
	assert.Contains(t, output, "✓ army-reform (military/burst)")
	assert.Contains(t, output, "1 written, 0 failed, 1 total")
}

func TestGenerateCommandMissingTasks(t *testing.T) {
	_, err := executeCommand(t, "generate", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load tasks")
}

func TestGenerateCommandNotAnArray(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `{"title": "single"}`)

	output, err := executeCommand(t, "--format", "json", "generate", tasks, "-o", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	assert.Equal(t, CodeTasks, response.Error.Code)
}

func TestGenerateCommandBadThemes(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[]`)

	_, err := executeCommand(t, "generate", tasks, "--themes", filepath.Join(dir, "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load themes")
}

func TestGenerateCommandNegativeStars(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[]`)

	_, err := executeCommand(t, "generate", tasks, "--stars=-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "stars must be non-negative")
}

func TestGenerateCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[{"slug": "untitled"}]`)
	out := filepath.Join(dir, "from-config")
	cfg := filepath.Join(dir, "covergen.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output_dir: "+out+"\nworkers: 1\n"), 0644))

	_, err := executeCommand(t, "--config", cfg, "generate", tasks)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "untitled-cover.svg"))

	// An explicit flag wins over the config file.
	flagOut := filepath.Join(dir, "from-flag")
	_, err = executeCommand(t, "--config", cfg, "generate", tasks, "-o", flagOut)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(flagOut, "untitled-cover.svg"))
}

func TestGenerateCommandFixtures(t *testing.T) {
	dir := t.TempDir()
	tasks := filepath.Join(dir, "cover-tasks.json")
	require.NoError(t, article.WriteTasks(tasks, testutil.Records()))
	out := filepath.Join(dir, "covers")

	_, err := executeCommand(t, "generate", tasks, "-o", out, "--workers", "3")
	require.NoError(t, err)

	for _, fx := range testutil.Fixtures {
		data, err := os.ReadFile(filepath.Join(out, fx.Name+"-cover.svg"))
		require.NoError(t, err, fx.Name)
		assert.Equal(t, fx.Digest, cover.DigestBytes(data), fx.Name)
	}
}
