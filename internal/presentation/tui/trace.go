package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/nerv/pkg/hub"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/muesli/termenv"
)

var kindColors = map[string]string{
	string(model.ChangeNew):    "#34d399",
	string(model.ChangeUpdate): "#fbbf24",
	string(model.ChangeDelete): "#f87171",
	model.EventChange:          "#60a5fa",
}

// Tracer prints the events fired by Nodes, one line per event.
type Tracer struct {
	w       io.Writer
	profile termenv.Profile
	tapped  map[*model.Node]bool
}

// NewTracer creates a Tracer writing to w with the given color profile.
func NewTracer(w io.Writer, p termenv.Profile) *Tracer {
	return &Tracer{
		w:       w,
		profile: p,
		tapped:  make(map[*model.Node]bool),
	}
}

// Attach prints every event fired on n, prefixed with path. Attaching the
// same Node twice is a no-op and returns nil.
func (t *Tracer) Attach(path string, n *model.Node) *hub.Subscription {
	if t.tapped[n] {
		return nil
	}
	t.tapped[n] = true
	return n.Hub().Tap(func(event string, args []any) {
		t.Event(path, event, args)
	})
}

// Event prints a single event line.
func (t *Tracer) Event(path, event string, args []any) {
	var b strings.Builder

	if path == "" {
		path = "."
	}
	b.WriteString(t.profile.String(fmt.Sprintf("%-16s", path)).Faint().String())
	b.WriteString(" ")

	kind := event
	if i := strings.LastIndexByte(event, ':'); i >= 0 {
		kind = event[i+1:]
	}
	style := t.profile.String(event).Bold()
	if c, ok := kindColors[kind]; ok {
		style = style.Foreground(t.profile.Color(c))
	}
	b.WriteString(style.String())

	if c, ok := model.ChangeOf(args); ok {
		switch c.Type {
		case model.ChangeNew:
			fmt.Fprintf(&b, " = %s", formatValue(c.NewValue))
		case model.ChangeUpdate:
			fmt.Fprintf(&b, " %s -> %s", formatValue(c.OldValue), formatValue(c.NewValue))
		case model.ChangeDelete:
			fmt.Fprintf(&b, " (was %s)", formatValue(c.OldValue))
		}
	} else if bubble, ok := model.BubbleOf(args); ok {
		b.WriteString(t.profile.String(" from " + strings.Join(bubble.Path, ".")).Faint().String())
	}

	fmt.Fprintln(t.w, b.String())
}

// Banner prints the nerv banner.
func (t *Tracer) Banner(version string) {
	PrintBanner(t.w, t.profile, version)
}

// Op prints an operation header.
func (t *Tracer) Op(i int, op string) {
	fmt.Fprintln(t.w, t.profile.String(fmt.Sprintf("# %d %s", i+1, op)).Underline().String())
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", t)
	case model.Ref:
		return fmt.Sprintf("ref(%v)", t.Value())
	}
	return fmt.Sprintf("%v", v)
}
