package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for termquest.
type Mode int

const (
	// ModeNonInteractive is used for scripts, CI and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode reports ModeNonInteractive when TERMQUEST_NON_INTERACTIVE=1,
// CI is set, or stdin or stdout is not a terminal.
func DetectMode() Mode {
	if os.Getenv("TERMQUEST_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ColorEnabled reports whether output may carry ANSI styling. NO_COLOR
// disables it.
func ColorEnabled() bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
}
