package tui

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Profile resolves a color mode to a termenv profile. In auto mode colors are
// used only when f is a terminal.
func Profile(mode string, f *os.File) (termenv.Profile, error) {
	switch mode {
	case ColorAlways:
		return termenv.ANSI256, nil
	case ColorNever:
		return termenv.Ascii, nil
	case ColorAuto, "":
		if f == nil || !term.IsTerminal(int(f.Fd())) {
			return termenv.Ascii, nil
		}
		return termenv.EnvColorProfile(), nil
	}
	return termenv.Ascii, fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
}
