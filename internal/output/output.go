// Package output formats the daemon's active overlay list for scripts,
// launchers and humans.
package output

import (
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entry is one live overlay as reported by the daemon.
type Entry struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Shown   time.Time `json:"shown,omitzero"`
}

// NewEntry builds an entry. Overlay ids are ULIDs, so the shown time is
// recovered from the id; other ids leave it zero.
func NewEntry(id, kind, message string) Entry {
	e := Entry{ID: id, Kind: kind, Message: message}
	if u, err := ulid.ParseStrict(id); err == nil {
		e.Shown = ulid.Time(u.Time())
	}
	return e
}

// Formatter formats entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// FormatTypes lists the supported formats.
var FormatTypes = []FormatType{FormatPlain, FormatDmenu, FormatJSON, FormatIDs}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template      string // Custom template for dmenu/plain format
	ShowIndex     bool   // Show 1-based index prefix
	ShowTime      bool   // Show relative time
	MessageMaxLen int    // Maximum message length (0 = unlimited)
	Separator     string // Field separator for dmenu format

	// Now is the reference for relative times. Nil means time.Now.
	Now func() time.Time
}

// DefaultFormatterOptions returns sensible defaults for dmenu output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:     true,
		ShowTime:      true,
		MessageMaxLen: 80,
		Separator:     " | ",
	}
}

func (o FormatterOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
