package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// PlainFormatter formats entries as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes entries as plain text, one block per entry.
func (f *PlainFormatter) Format(w io.Writer, entries []Entry) error {
	now := f.opts.now()
	for i, e := range entries {
		if f.template != nil {
			if err := f.template.Execute(w, newTemplateData(i+1, e, now)); err != nil {
				return err
			}
			continue
		}

		var sb strings.Builder
		if f.opts.ShowIndex {
			fmt.Fprintf(&sb, "[%d] ", i+1)
		}
		fmt.Fprintf(&sb, "<%s> %s", e.Kind, e.ID)
		if f.opts.ShowTime {
			fmt.Fprintf(&sb, " (%s)", relativeTime(e.Shown, now))
		}
		sb.WriteString("\n    ")
		sb.WriteString(sanitize(e.Message, f.opts.MessageMaxLen))
		sb.WriteString("\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatField outputs a specific field from an entry.
func FormatField(e Entry, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return e.ID
	case "kind":
		return e.Kind
	case "shown", "time":
		if e.Shown.IsZero() {
			return ""
		}
		return e.Shown.Format("2006-01-02T15:04:05.000Z07:00")
	default:
		return e.Message
	}
}
