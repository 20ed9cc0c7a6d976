package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// writeFile writes content to name under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func textOpts() *RootOptions {
	return &RootOptions{Format: "text"}
}

func jsonOpts() *RootOptions {
	return &RootOptions{Format: "json"}
}

const priceDocuments = `[
  {"id": "d1", "price": {"operator": "GreaterThanEqual", "value": {"int": 10}}},
  {"id": "d2", "price": {"operator": "LessThan", "value": {"int": 10}}},
  {"id": "d3", "price": {"values": [{"operator": "Equal", "value": {"int": 3}}, {"operator": "Equal", "value": {"int": 15}}]}},
  {"id": "d4"},
  {"id": "d5", "price": {"operator": "GreaterThan", "value": {"int": 15}}}
]`
