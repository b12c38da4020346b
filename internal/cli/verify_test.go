package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[
  {"title": "The Long Transition", "slug": "democracy-transition"},
  {"title": "Speech", "tags": "freedom", "slug": "freedom-of-speech"}
]`)
	db := filepath.Join(dir, "covers.db")

	_, err := executeCommand(t, "generate", tasks, "-o", filepath.Join(dir, "covers"), "--db", db)
	require.NoError(t, err)

	output, err := executeCommand(t, "verify", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ democracy-transition")
	assert.Contains(t, output, "✓ freedom-of-speech")
	assert.Contains(t, output, "2 matched, 0 mismatched, 0 missing, 0 invalid, 2 total")
	assert.Contains(t, output, "✓ All covers match their baselines")

	output, err = executeCommand(t, "verify", tasks, "--db", db)
	require.NoError(t, err, output)
}

func TestVerifyCommandDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	tasks := writeTasksFile(t, dir, `[{"title": "The Long Transition", "slug": "democracy-transition"}]`)
	db := filepath.Join(dir, "covers.db")

	_, err := executeCommand(t, "generate", tasks, "-o", filepath.Join(dir, "covers"), "--db", db)
	require.NoError(t, err)

	// Fewer stars change the starfield and therefore the digest.
	changed := writeTasksFile(t, dir, `[
  {"title": "The Long Transition", "slug": "democracy-transition"},
  {"title": "Unrecorded", "slug": "new-post"},
  ["not", "an", "object"]
]`)
	output, err := executeCommand(t, "--format", "json", "verify", changed, "--db", db, "--stars", "3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var response struct {
		Status string       `json:"status"`
		Data   VerifyResult `json:"data"`
		Error  *CLIError    `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, CodeVerifyFailed, response.Error.Code)
	assert.Equal(t, 0, response.Data.Matched)
	assert.Equal(t, 1, response.Data.Mismatched)
	assert.Equal(t, 1, response.Data.Missing)
	assert.Equal(t, 1, response.Data.Invalid)
	require.Len(t, response.Data.Checks, 3)
	assert.Equal(t, "mismatch", response.Data.Checks[0].Status)
	assert.NotEqual(t, response.Data.Checks[0].Want, response.Data.Checks[0].Got)
	assert.Equal(t, "missing", response.Data.Checks[1].Status)
	assert.Equal(t, "invalid", response.Data.Checks[2].Status)
}

func TestVerifyCommandRequiresDB(t *testing.T) {
	t.Setenv("COVERGEN_DB", "")

	_, err := executeCommand(t, "verify")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db is required")
}

func TestVerifyCommandEmptyLedger(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")

	output, err := executeCommand(t, "verify", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, output, "0 total")
}
