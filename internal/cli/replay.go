package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/nerv"
	"github.com/aretw0/nerv/internal/presentation/tui"
	"github.com/aretw0/nerv/internal/script"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/aretw0/nerv/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// ReplayOptions configures RunReplay.
type ReplayOptions struct {
	Options
	DocumentPath string
	ScriptPath   string
	TraceAll     bool
	Stats        bool
	Diff         bool
	Quiet        bool
}

// RunReplay loads a document, applies a script to it while tracing the fired
// events, then prints the final state as YAML.
func RunReplay(opts ReplayOptions) error {
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
	ops, err := script.LoadScript(opts.ScriptPath)
	if err != nil {
		return err
	}
	logger.Info("replay", "document", opts.DocumentPath, "ops", len(ops))

	out := opts.out()
	tracer := tui.NewTracer(out, profile)
	if !opts.Quiet {
		tracer.Banner(nerv.Version)
	}

	reg := prometheus.NewRegistry()
	collector := observability.NewCollector(reg, observability.WithLogger(logger))
	collector.Watch(root)

	attach := func() {
		if !opts.TraceAll {
			tracer.Attach("", root)
			return
		}
		script.Walk(root, func(path string, n *model.Node) {
			tracer.Attach(path, n)
		})
	}

	runner := script.NewRunner(root,
		script.WithLogger(logger),
		script.WithBeforeOp(func(i int, op script.Op) {
			attach()
			tracer.Op(i, op.String())
		}),
	)
	before := root.Snapshot()
	runErr := runner.Run(ops)

	if opts.Diff {
		fmt.Fprintln(out)
		for _, c := range model.Diff(before, root.Snapshot()) {
			tracer.Event("diff", model.EventName(c.Name, c.Type), []any{c})
		}
	}

	fmt.Fprintln(out)
	snapshot, err := script.MarshalYAML(root)
	if err != nil {
		return err
	}
	fmt.Fprint(out, string(snapshot))

	if opts.Stats {
		stats, err := eventStats(reg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, stats)
	}
	return runErr
}

// eventStats summarizes the event counters gathered from reg.
func eventStats(reg *prometheus.Registry) (string, error) {
	families, err := reg.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}
	var parts []string
	for _, mf := range families {
		if mf.GetName() != "nerv_events_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" {
					parts = append(parts, fmt.Sprintf("%s=%.0f", l.GetValue(), m.GetCounter().GetValue()))
				}
			}
		}
	}
	slices.Sort(parts)
	return "events: " + strings.Join(parts, " "), nil
}
