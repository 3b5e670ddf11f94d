package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/nerv/internal/logging"
	"github.com/aretw0/nerv/internal/presentation/tui"
	"github.com/aretw0/nerv/internal/script"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/muesli/termenv"
)

// Options holds the settings shared by every command.
type Options struct {
	LogLevel string
	Color    string
	Out      io.Writer
	Err      io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) errOut() io.Writer {
	if o.Err == nil {
		return os.Stderr
	}
	return o.Err
}

// createLogger configures the application logger. Logs go to the error
// writer so they do not mix with command output.
func createLogger(o Options) (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(o.errOut(), level), nil
}

// colorProfile resolves --color against the output writer.
func colorProfile(o Options) (termenv.Profile, error) {
	f, _ := o.out().(*os.File)
	return tui.Profile(o.Color, f)
}

// loadTree reads a document and wraps it into a Node tree.
func loadTree(path string, logger *slog.Logger) (*model.Node, error) {
	data, err := script.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	root, err := model.FromTree(data, model.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return root, nil
}
