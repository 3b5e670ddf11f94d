package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the nerv banner and version to w.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	lines := []struct {
		text  string
		color string
	}{
		{" _ __   ___ _ ____   __", "#34d399"},
		{"| '_ \\ / _ \\ '__\\ \\ / /", "#2dd4bf"},
		{"| | | |  __/ |   \\ V / ", "#22d3ee"},
		{"|_| |_|\\___|_|    \\_/  ", "#38bdf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
