package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Sail.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   ____        _ _ ", "#38bdf8"},
		{"  / ___|  __ _(_) |", "#22d3ee"},
		{"  \\___ \\ / _` | | |", "#2dd4bf"},
		{"   ___) | (_| | | |", "#34d399"},
		{"  |____/ \\__,_|_|_|", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
