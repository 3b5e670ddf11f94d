package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/nerv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "nerv version "+nerv.Version+"\n", out)
}

func TestReplayCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.yaml")
	ops := filepath.Join(dir, "ops.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("count: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(ops, []byte("- {op: set, path: count, value: 2}\n"), 0o644))

	out, err := execute(t, "replay", doc, ops, "--color", "never", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "count:update 1 -> 2")
	assert.Contains(t, out, "count: 2")

	_, err = execute(t, "replay", doc)
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("tags: [a]\n"), 0o644))

	out, err := execute(t, "inspect", doc, "--raw", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "| `tags.0` | primitive | | \"a\" |")
}
