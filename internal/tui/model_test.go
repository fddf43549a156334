package tui

import (
	"errors"
	"image"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/overlay"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualScheduler records countdowns so tests decide when they fire.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(_ time.Duration, fn func()) overlay.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the callbacks of timers that were not stopped.
func (s *manualScheduler) pending() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []func()
	for _, t := range s.timers {
		if !t.stopped {
			out = append(out, t.fn)
		}
	}
	return out
}

func newTestModel(t *testing.T) (Model, *overlay.Manager, *Host, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	host := NewHost(config.DefaultCellWidth, config.DefaultCellHeight)
	mgr := overlay.NewManager(host, sched, overlay.DefaultOptions(), nil)
	m := New(mgr, host, config.DefaultConfig().Preview)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, mgr, host, sched
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestHost_WorkArea(t *testing.T) {
	h := NewHost(8, 16)

	_, err := h.WorkArea()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTerminalSize))
	var hostErr *overlay.HostError
	assert.ErrorAs(t, err, &hostErr)

	h.Resize(80, 20)
	wa, err := h.WorkArea()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 640, 320), wa)
	assert.Equal(t, image.Pt(8, 16), h.Cell())
}

func TestModel_ResizeSetsWorkArea(t *testing.T) {
	_, _, host, _ := newTestModel(t)

	wa, err := host.WorkArea()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, (40-footerRows)*16), wa)
}

func TestModel_ShowToast(t *testing.T) {
	m, mgr, host, _ := newTestModel(t)

	m, _ = press(t, m, "e")

	require.Equal(t, 1, mgr.Count())
	visible := host.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, overlay.Error, visible[0].Severity)
	assert.Equal(t, overlay.TopRight, visible[0].Placement)

	view := m.View()
	assert.Contains(t, view, sampleMessages[0])
	assert.Contains(t, view, "toast/error")
	assert.Contains(t, view, "from now")
}

func TestModel_SnackbarActionAndPlacement(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)

	var reasons []overlay.DismissReason
	mgr.OnDismissed(func(_ *overlay.Surface, r overlay.DismissReason) {
		reasons = append(reasons, r)
	})

	m, cmd := press(t, m, "p")
	require.NotNil(t, cmd)
	assert.Equal(t, overlay.BottomRight, m.placement)

	m, _ = press(t, m, "n")
	active := mgr.Active()
	require.Len(t, active, 1)
	assert.Equal(t, overlay.Snackbar, active[0].Kind)
	assert.Equal(t, overlay.BottomRight, active[0].Placement)
	assert.Contains(t, m.View(), "UNDO")

	_, cmd = press(t, m, "a")
	assert.Equal(t, 0, mgr.Count())
	assert.Equal(t, []overlay.DismissReason{overlay.ActionInvoked}, reasons)

	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.False(t, msg.isErr)
	assert.Contains(t, msg.text, "Action pressed")
}

func TestModel_ActionWithoutSnackbar(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, _ = press(t, m, "t")
	_, cmd := press(t, m, "a")

	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	assert.True(t, msg.isErr)
}

func TestModel_ExpiryArrivesAsRunMsg(t *testing.T) {
	m, mgr, host, sched := newTestModel(t)

	m, _ = press(t, m, "t")
	pending := sched.pending()
	require.Len(t, pending, 1)

	m = update(t, m, runMsg{fn: pending[0]})

	assert.Equal(t, 0, mgr.Count())
	assert.Equal(t, 0, host.Windows())
	assert.Contains(t, m.View(), "no active overlays")
}

func TestModel_DismissClickCloseAll(t *testing.T) {
	m, mgr, host, _ := newTestModel(t)

	m, _ = press(t, m, "t")
	m, _ = press(t, m, "w")
	m, _ = press(t, m, "n")
	require.Equal(t, 3, mgr.Count())

	m, _ = press(t, m, "d")
	assert.Equal(t, 2, mgr.Count(), "newest snackbar closed")

	m, _ = press(t, m, "c")
	assert.Equal(t, 1, mgr.Count(), "clicking a toast dismisses it")

	_, _ = press(t, m, "x")
	assert.Equal(t, 0, mgr.Count())
	assert.Equal(t, 0, host.Windows())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	showAll := m.help.ShowAll

	m, _ = press(t, m, "?")
	assert.Equal(t, !showAll, m.help.ShowAll)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_StatusLifecycle(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m = update(t, m, copyResultMsg{err: errors.New("no clipboard")})
	m = update(t, m, statusMsg{text: "Copy failed: no clipboard", isErr: true})
	assert.Contains(t, m.View(), "Copy failed")

	m = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.statusMsg)
	assert.Contains(t, m.View(), "0 active")
}

func TestView_NotReady(t *testing.T) {
	host := NewHost(8, 16)
	m := New(overlay.NewManager(host, &manualScheduler{}, overlay.DefaultOptions(), nil), host, config.PreviewConfig{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestCellRect(t *testing.T) {
	col, row, w, h := cellRect(image.Rect(80, 32, 440, 96), image.Pt(8, 16))
	assert.Equal(t, []int{10, 2, 45, 4}, []int{col, row, w, h})

	_, _, w, h = cellRect(image.Rect(0, 0, 3, 3), image.Pt(8, 16))
	assert.Equal(t, []int{1, 1}, []int{w, h}, "at least one cell")
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name string
		box  string
		col  int
		row  int
		want []string
	}{
		{
			name: "inside",
			box:  "ab\ncd",
			col:  3,
			row:  1,
			want: []string{"      ", "   ab ", "   cd "},
		},
		{
			name: "clipped right",
			box:  "xyz",
			col:  4,
			row:  0,
			want: []string{"    xy", "      ", "      "},
		},
		{
			name: "clipped left",
			box:  "xyz",
			col:  -1,
			row:  2,
			want: []string{"      ", "      ", "yz    "},
		},
		{
			name: "below canvas",
			box:  "xyz",
			col:  0,
			row:  5,
			want: []string{"      ", "      ", "      "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := blankCanvas(6, 3)
			composite(canvas, tt.box, tt.col, tt.row, 6)
			assert.Equal(t, tt.want, canvas)
		})
	}
}

func TestNextPlacement(t *testing.T) {
	assert.Equal(t, overlay.TopLeft, nextPlacement(overlay.BottomRight))
	assert.Equal(t, overlay.TopCenter, nextPlacement(overlay.TopLeft))
	assert.Equal(t, overlay.DefaultPlacement, nextPlacement("sideways"))
}

func TestRenderSurface_FitsBox(t *testing.T) {
	m, mgr, _, _ := newTestModel(t)
	_, _ = press(t, m, "n")

	s := mgr.Active()[0]
	box := renderSurface(s, 60, 3)
	lines := strings.Split(box, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, box, sampleMessages[0])
	assert.Contains(t, box, "UNDO")
}
