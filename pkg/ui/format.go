// Package ui handles output format selection for pipetint's own
// chrome (help text, listings) and for the data stream.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/pipetint/pkg/tint"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto resolves to styled output. Unlike interactive tools,
	// a pipe colorizer must keep emitting escape codes when piped:
	// that is the whole point of the pipeline contract.
	FormatAuto Format = iota
	// FormatStyled emits ANSI escape sequences
	FormatStyled
	// FormatPlain strips all styling
	FormatPlain
	// FormatMarkup emits tag-based markup instead of escape codes
	FormatMarkup
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatStyled:
		return "styled"
	case FormatPlain:
		return "plain"
	case FormatMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "styled", "ansi", "term":
		return FormatStyled, nil
	case "plain", "text":
		return FormatPlain, nil
	case "markup":
		return FormatMarkup, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// Mode maps the format to the engine's render mode. FormatAuto keeps
// styling on; honoring NO_COLOR downgrades to plain.
func (f Format) Mode() tint.Mode {
	switch f {
	case FormatPlain:
		return tint.ModePlain
	case FormatMarkup:
		return tint.ModeMarkup
	case FormatAuto:
		if os.Getenv("NO_COLOR") != "" {
			return tint.ModePlain
		}
		return tint.ModeStyled
	default:
		return tint.ModeStyled
	}
}

// ChromeIsColored reports whether pipetint's own chrome (help examples,
// color listings) should be styled. Unlike the data stream, chrome is
// only colored on an interactive terminal that supports color.
func ChromeIsColored(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
