package warn

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode controls styling of warnings.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a color mode. An empty string selects [ColorAuto].
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}

	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)

	switch {
	case mode == ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case mode == ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case !isTerminal(w):
		r.SetColorProfile(termenv.Ascii)
	}

	return r
}

type styles struct {
	bold       lipgloss.Style
	boldYellow lipgloss.Style
	boldGreen  lipgloss.Style
	boldWhite  lipgloss.Style
	boldGrey   lipgloss.Style
	boldRed    lipgloss.Style
	yellow     lipgloss.Style
	red        lipgloss.Style
	green      lipgloss.Style
	blue       lipgloss.Style
	dim        lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle()

	return styles{
		bold:       base.Bold(true),
		boldYellow: base.Bold(true).Foreground(lipgloss.Color("3")),
		boldGreen:  base.Bold(true).Foreground(lipgloss.Color("2")),
		boldWhite:  base.Bold(true).Foreground(lipgloss.Color("7")),
		boldGrey:   base.Bold(true).Foreground(lipgloss.Color("8")),
		boldRed:    base.Bold(true).Foreground(lipgloss.Color("1")),
		yellow:     base.Foreground(lipgloss.Color("3")),
		red:        base.Foreground(lipgloss.Color("1")),
		green:      base.Foreground(lipgloss.Color("2")),
		blue:       base.Foreground(lipgloss.Color("12")),
		dim:        base.Faint(true),
	}
}

// paint renders each line separately; lipgloss pads multi-line blocks to a
// common width.
func paint(s lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = s.Render(l)
		}
	}

	return strings.Join(lines, "\n")
}
