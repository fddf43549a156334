package overlay

import (
	"fmt"
	"image/color"

	"github.com/jmylchreest/matkit/internal/theme"
)

// Severity selects a toast's colours and glyph.
type Severity int

// Severities.
const (
	Info Severity = iota
	Success
	Warning
	Error
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Glyph returns the built-in glyph shown before a toast message.
func (s Severity) Glyph() string {
	switch s {
	case Success:
		return "✓"
	case Warning:
		return "⚠"
	case Error:
		return "✕"
	default:
		return "ℹ"
	}
}

// ParseSeverity parses a severity name. Empty means Info.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "", "info":
		return Info, nil
	case "success":
		return Success, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Info, fmt.Errorf("invalid severity %q", s)
}

// Kind distinguishes toasts from snackbars.
type Kind int

// Kinds.
const (
	Toast Kind = iota
	Snackbar
)

func (k Kind) String() string {
	if k == Snackbar {
		return "snackbar"
	}
	return "toast"
}

// Style holds the colours and glyph a surface is painted with.
type Style struct {
	Background color.NRGBA
	Foreground color.NRGBA
	Action     color.NRGBA
	Glyph      string
}

// StyleFor derives a surface style from a palette.
// A nil palette uses the bundled default.
func StyleFor(p *theme.Palette, kind Kind, severity Severity) Style {
	if p == nil {
		p = theme.Default()
	}

	if kind == Snackbar {
		return Style{
			Background: p.Snackbar.Background.NRGBA(),
			Foreground: p.Snackbar.Foreground.NRGBA(),
			Action:     p.Action.NRGBA(),
		}
	}

	var sw theme.Swatch
	switch severity {
	case Success:
		sw = p.Severity.Success
	case Warning:
		sw = p.Severity.Warning
	case Error:
		sw = p.Severity.Error
	default:
		sw = p.Severity.Info
	}

	glyph := sw.Glyph
	if glyph == "" {
		glyph = severity.Glyph()
	}
	return Style{
		Background: sw.Background.NRGBA(),
		Foreground: sw.Foreground.NRGBA(),
		Action:     p.Action.NRGBA(),
		Glyph:      glyph,
	}
}
