package cli

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/nerv/internal/presentation/tui"
	"github.com/muesli/termenv"
)

// InspectOptions configures RunInspect.
type InspectOptions struct {
	Options
	DocumentPath string
	Raw          bool
}

// RunInspect prints a markdown report of a document's tree, rendered with
// glamour unless Raw is set.
func RunInspect(opts InspectOptions) error {
	logger, err := createLogger(opts.Options)
	if err != nil {
		return err
	}
	profile, err := colorProfile(opts.Options)
	if err != nil {
		return err
	}

	root, err := loadTree(opts.DocumentPath, logger)
	if err != nil {
		return err
	}

	md := tui.Report(filepath.Base(opts.DocumentPath), root)
	if opts.Raw {
		fmt.Fprint(opts.out(), md)
		return nil
	}

	render, err := tui.NewRenderer(profile != termenv.Ascii)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	fmt.Fprint(opts.out(), rendered)
	return nil
}
