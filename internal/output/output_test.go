package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testEntries() []Entry {
	toastID := ulid.MustNew(ulid.Timestamp(refTime.Add(-5*time.Second)), ulid.DefaultEntropy()).String()
	snackID := ulid.MustNew(ulid.Timestamp(refTime.Add(-2*time.Minute)), ulid.DefaultEntropy()).String()
	return []Entry{
		NewEntry(toastID, "toast", "Build finished"),
		NewEntry(snackID, "snackbar", "Message\n  archived"),
	}
}

func fixedOpts() FormatterOptions {
	opts := DefaultFormatterOptions()
	opts.Now = func() time.Time { return refTime }
	return opts
}

func TestNewEntry_RecoversShownTime(t *testing.T) {
	entries := testEntries()
	assert.True(t, refTime.Add(-5*time.Second).Equal(entries[0].Shown))

	e := NewEntry("not-a-ulid", "toast", "x")
	assert.True(t, e.Shown.IsZero())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(fixedOpts()).Format(&buf, testEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1 | 5 seconds ago | toast | Build finished", lines[0])
	assert.Equal(t, "2 | 2 minutes ago | snackbar | Message archived", lines[1])
}

func TestDmenuFormatter_NoIndexNoTime(t *testing.T) {
	opts := fixedOpts()
	opts.ShowIndex = false
	opts.ShowTime = false

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testEntries()))
	assert.True(t, strings.HasPrefix(buf.String(), "toast | Build finished\n"))
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	opts := fixedOpts()
	opts.Template = "{{.Index}}: {{upper .Entry.Kind}} {{truncate .Entry.Message 8}}"

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testEntries()[:1]))
	assert.Equal(t, "1: TOAST Build...\n", buf.String())
}

func TestDmenuFormatter_BadTemplateFallsBack(t *testing.T) {
	opts := fixedOpts()
	opts.Template = "{{.Nope"

	var buf bytes.Buffer
	require.NoError(t, NewDmenuFormatter(opts).Format(&buf, testEntries()[:1]))
	assert.Contains(t, buf.String(), "Build finished")
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(fixedOpts()).Format(&buf, testEntries()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "toast", decoded[0]["kind"])
	assert.Equal(t, "Build finished", decoded[0]["message"])
	assert.Contains(t, decoded[0], "shown")
}

func TestJSONFormatter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(fixedOpts()).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPlainFormatter_Format(t *testing.T) {
	entries := testEntries()
	var buf bytes.Buffer
	require.NoError(t, NewPlainFormatter(fixedOpts()).Format(&buf, entries))

	out := buf.String()
	assert.Contains(t, out, "[1] <toast> "+entries[0].ID+" (5 seconds ago)")
	assert.Contains(t, out, "    Message archived\n")
}

func TestIDsFormatter_Format(t *testing.T) {
	entries := testEntries()
	var buf bytes.Buffer
	require.NoError(t, NewIDsFormatter().Format(&buf, entries))
	assert.Equal(t, entries[0].ID+"\n"+entries[1].ID+"\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format FormatType
		want   Formatter
	}{
		{FormatJSON, &JSONFormatter{}},
		{FormatDmenu, &DmenuFormatter{}},
		{FormatIDs, &IDsFormatter{}},
		{FormatPlain, &PlainFormatter{}},
		{"unknown", &PlainFormatter{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.IsType(t, tt.want, NewFormatter(tt.format, DefaultFormatterOptions()))
		})
	}
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "unknown", relativeTime(time.Time{}, refTime))
	assert.Equal(t, "now", relativeTime(refTime, refTime))
	assert.Equal(t, "1 hour ago", relativeTime(refTime.Add(-time.Hour), refTime))
}

func TestFormatField(t *testing.T) {
	e := testEntries()[0]
	assert.Equal(t, e.ID, FormatField(e, "id"))
	assert.Equal(t, "toast", FormatField(e, "KIND"))
	assert.Equal(t, "Build finished", FormatField(e, "message"))
	assert.Empty(t, FormatField(NewEntry("x", "toast", "m"), "shown"))
}
