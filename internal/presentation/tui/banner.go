package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the version underneath.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   ___                _                 `, "#818cf8"},
		{`  / __|___ _ _  __ __(_)___ _ _ __ _ ___ `, "#a78bfa"},
		{` | (__/ _ \ ' \/ _/ _| / -_) '_/ _' / -_)`, "#c084fc"},
		{`  \___\___/_||_\__\__|_\___|_| \__, \___|`, "#e879f9"},
		{`                               |___/     `, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}

// Prompt returns the input prompt, colored when the terminal supports it.
func Prompt() string {
	p := termenv.ColorProfile()
	return termenv.String("> ").Foreground(p.Color("#a78bfa")).Bold().String()
}
