// Package output provides utilities for creating termenv.Output with consistent
// color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// ColorMode is the user's choice of colored output.
type ColorMode int

const (
	// ColorAuto colors output written to a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways colors output regardless of the destination.
	ColorAlways
	// ColorNever disables colors.
	ColorNever
)

// ParseColorMode parses the value of the --color flag.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	}
	return ColorAuto, zerr.With(zerr.New("invalid color mode, expected 'auto', 'always' or 'never'"), "color", s)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// ColorProfile returns the color profile for output written to w.
// NO_COLOR always wins. In auto mode, a non-terminal gets plain text and CI logs get ANSI.
func ColorProfile(w io.Writer, mode ColorMode) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" || mode == ColorNever {
		return termenv.Ascii
	}
	if mode == ColorAlways {
		return termenv.ANSI256
	}
	if isCI() {
		return termenv.ANSI
	}
	if !IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a new termenv.Output for w in auto color mode.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithMode(w, ColorAuto, opts...)
}

// NewWithMode creates a new termenv.Output for w using mode to pick the color profile.
func NewWithMode(w io.Writer, mode ColorMode, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile(w, mode)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

func isCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}
