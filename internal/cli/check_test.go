package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: flag_point
description: a boolean request against two stored flags
request:
  flag: true
documents:
  d1: {flag: {operator: Equal, value: {bool: true}}}
  d2: {flag: {operator: Equal, value: {bool: false}}}
expect_match: [d1]
`

const failingScenario = `name: wrong_expectation
description: expects a document the filter rejects
request:
  flag: true
documents:
  d1: {flag: {operator: Equal, value: {bool: false}}}
expect_match: [d1]
`

// scenarioTree lays out <root>/scenarios/<name>.yaml files and returns root.
func scenarioTree(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0644))
	}
	return root
}

func TestCheck_HarnessScenarios(t *testing.T) {
	dir := filepath.Join("..", "harness", "testdata", "scenarios")

	stdout, _, err := execute(NewCheckCommand(textOpts()), dir)
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "✓ price_point\n")
	assert.Contains(t, stdout, "0 failed")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestCheck_Failure(t *testing.T) {
	root := scenarioTree(t, map[string]string{
		"flag_point":        passingScenario,
		"wrong_expectation": failingScenario,
	})

	stdout, _, err := execute(NewCheckCommand(textOpts()), filepath.Join(root, "scenarios"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✓ flag_point\n")
	assert.Contains(t, stdout, "✗ wrong_expectation\n")
	assert.Contains(t, stdout, "Check Summary: 1 passed, 1 failed, 2 total")
}

func TestCheck_JSON(t *testing.T) {
	root := scenarioTree(t, map[string]string{
		"flag_point":        passingScenario,
		"wrong_expectation": failingScenario,
	})

	stdout, _, err := execute(NewCheckCommand(jsonOpts()), filepath.Join(root, "scenarios"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
		Error  *CLIError   `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Equal(t, "flag_point", resp.Data.Scenarios[0].Name)
	assert.Equal(t, []string{"d1"}, resp.Data.Scenarios[0].Matches)
	assert.False(t, resp.Data.Scenarios[1].Pass)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_CHECK_FAILED", resp.Error.Code)
}

func TestCheck_Filter(t *testing.T) {
	root := scenarioTree(t, map[string]string{
		"flag_point":        passingScenario,
		"wrong_expectation": failingScenario,
	})

	stdout, _, err := execute(NewCheckCommand(textOpts()), "--filter", "flag_*", filepath.Join(root, "scenarios"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, stdout, "wrong_expectation")
}

func TestCheck_GoldenUpdateThenCompare(t *testing.T) {
	root := scenarioTree(t, map[string]string{"flag_point": passingScenario})
	scenarios := filepath.Join(root, "scenarios")
	golden := filepath.Join(root, "golden", "flag_point.golden")

	stdout, _, err := execute(NewCheckCommand(textOpts()), "--update", scenarios)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ flag_point (golden updated)")

	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scenario: flag_point\nmatches: [d1]\nfilter:\nOR\n")

	_, _, err = execute(NewCheckCommand(textOpts()), scenarios)
	require.NoError(t, err)

	// A stale golden file fails the scenario
	require.NoError(t, os.WriteFile(golden, []byte("stale\n"), 0644))
	stdout, _, err = execute(NewCheckCommand(textOpts()), scenarios)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "does not match golden file")
}

func TestCheck_GoldenDirFlag(t *testing.T) {
	root := scenarioTree(t, map[string]string{"flag_point": passingScenario})
	goldenDir := filepath.Join(t.TempDir(), "snapshots")

	_, _, err := execute(NewCheckCommand(textOpts()), "--update", "--golden-dir", goldenDir, filepath.Join(root, "scenarios"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(goldenDir, "flag_point.golden"))
}

func TestCheck_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, _, err := execute(NewCheckCommand(textOpts()), "/nonexistent/scenarios")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("bad filter pattern", func(t *testing.T) {
		root := scenarioTree(t, map[string]string{"flag_point": passingScenario})
		_, _, err := execute(NewCheckCommand(textOpts()), "--filter", "[", filepath.Join(root, "scenarios"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("invalid scenario", func(t *testing.T) {
		root := scenarioTree(t, map[string]string{"broken": "name: broken\nunknown_field: 1\n"})
		stdout, _, err := execute(NewCheckCommand(textOpts()), filepath.Join(root, "scenarios"))
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, stdout, "failed to load scenario")
	})
}

func TestCheck_NoScenarios(t *testing.T) {
	root := scenarioTree(t, nil)

	stdout, _, err := execute(NewCheckCommand(textOpts()), filepath.Join(root, "scenarios"))
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", stdout)
}
