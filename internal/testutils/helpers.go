package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/nerv/pkg/model"
	"github.com/stretchr/testify/require"
)

// Recorder collects every event fired on a Node's hub, in order.
type Recorder struct {
	Events []string
	Args   [][]any
}

// Record starts recording the events fired on n.
func Record(n *model.Node) *Recorder {
	r := &Recorder{}
	n.Hub().Tap(func(event string, args []any) {
		r.Events = append(r.Events, event)
		r.Args = append(r.Args, args)
	})
	return r
}

// Reset forgets the events recorded so far.
func (r *Recorder) Reset() {
	r.Events = nil
	r.Args = nil
}

// SetupTestDir creates a temporary directory holding files (name -> content).
// It returns the absolute path to the directory and fails the test immediately on error.
func SetupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(absPath, name), []byte(content), 0o644), "Failed to write %s", name)
	}
	return absPath
}
