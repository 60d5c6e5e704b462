package main

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// applyColorMode resolves a --color flag value (auto, always, never)
// into the process-wide color switch. auto enables color only when
// stdout is a terminal and NO_COLOR is unset.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
}
