package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// cellRect converts a pixel rectangle to a cell origin and size. Sizes are
// at least one cell.
func cellRect(r image.Rectangle, cell image.Point) (col, row, w, h int) {
	col = r.Min.X / cell.X
	row = r.Min.Y / cell.Y
	w = max(1, r.Dx()/cell.X)
	h = max(1, r.Dy()/cell.Y)
	return col, row, w, h
}

func lipColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderSurface draws a surface as a filled box of w by h cells with its
// elements on the middle row.
func renderSurface(s *overlay.Surface, w, h int) string {
	style := s.Style()
	bg := lipColor(style.Background)

	box := lipgloss.NewStyle().
		Width(w).
		Height(h).
		Padding(0, 1).
		AlignVertical(lipgloss.Center).
		Background(bg).
		Foreground(lipColor(style.Foreground))

	inner := max(0, w-2)

	var action string
	if e, ok := s.Element(overlay.ActionElement); ok {
		action = lipgloss.NewStyle().
			Bold(true).
			Background(bg).
			Foreground(lipColor(e.Color)).
			Render(strings.ToUpper(e.Text))
	}

	var text string
	if e, ok := s.Element(overlay.GlyphElement); ok {
		text = e.Text + " "
	}
	if e, ok := s.Element(overlay.MessageElement); ok {
		text += e.Text
	}

	room := inner
	if action != "" {
		room -= ansi.StringWidth(action) + 1
	}
	text = ansi.Truncate(text, max(0, room), "…")

	line := text
	if action != "" {
		gap := max(1, inner-ansi.StringWidth(text)-ansi.StringWidth(action))
		line += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap)) + action
	}
	return box.Render(line)
}

// blankCanvas returns rows lines of cols spaces.
func blankCanvas(cols, rows int) []string {
	lines := make([]string, max(0, rows))
	for i := range lines {
		lines[i] = strings.Repeat(" ", max(0, cols))
	}
	return lines
}

// composite pastes box onto canvas with its top-left cell at (col, row),
// clipping anything outside the canvas.
func composite(canvas []string, box string, col, row, cols int) {
	for i, boxLine := range strings.Split(box, "\n") {
		y := row + i
		if y < 0 || y >= len(canvas) {
			continue
		}

		width := ansi.StringWidth(boxLine)
		x := col
		if x < 0 {
			boxLine = ansi.Cut(boxLine, -x, width)
			width += x
			x = 0
		}
		if x >= cols || width <= 0 {
			continue
		}
		if x+width > cols {
			boxLine = ansi.Cut(boxLine, 0, cols-x)
			width = cols - x
		}

		line := canvas[y]
		canvas[y] = ansi.Cut(line, 0, x) + boxLine + ansi.Cut(line, x+width, cols)
	}
}
