// Package tui provides the BubbleTea-based overlay preview. The terminal
// stands in for the screen: toasts and snackbars from a live overlay.Manager
// are composited over it and expire on their real timers.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/overlay"
)

// footerRows is the number of rows below the overlay area: a rule, the
// active list, the status line and the help line.
const (
	listRows   = 4
	footerRows = listRows + 3
)

var sampleMessages = []string{
	"Draft saved",
	"Connection restored",
	"Photo uploaded to album",
	"Low disk space on /home",
	"Sync failed, retrying",
	"Message archived",
}

// Model is the preview TUI model.
type Model struct {
	mgr  *overlay.Manager
	host *Host
	cfg  config.PreviewConfig

	keys KeyMap
	help help.Model

	width  int
	height int
	ready  bool

	placement overlay.Placement
	shown     int

	// Status message
	statusMsg string
	statusErr bool

	now func() time.Time
}

// runMsg carries a scheduler callback onto the update loop.
type runMsg struct {
	fn func()
}

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Dispatch returns an overlay.Dispatcher that runs callbacks inside p's
// update loop.
func Dispatch(p *tea.Program) overlay.Dispatcher {
	return func(fn func()) {
		p.Send(runMsg{fn: fn})
	}
}

// New creates a model driving mgr, which must have been created with host.
func New(mgr *overlay.Manager, host *Host, cfg config.PreviewConfig) Model {
	h := help.New()
	h.ShowAll = cfg.ShowHelp
	return Model{
		mgr:       mgr,
		host:      host,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		help:      h,
		placement: overlay.DefaultPlacement,
		now:       time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.host.Resize(m.width, m.areaRows())
		m.ready = true
		return m, nil

	case runMsg:
		msg.fn()
		return m, nil

	case tickMsg:
		return m, tick()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied to clipboard", false)
	}

	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

func (m Model) areaRows() int {
	return max(0, m.height-footerRows)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Info):
		return m.showToast(overlay.Info)
	case key.Matches(msg, m.keys.Success):
		return m.showToast(overlay.Success)
	case key.Matches(msg, m.keys.Warning):
		return m.showToast(overlay.Warning)
	case key.Matches(msg, m.keys.Error):
		return m.showToast(overlay.Error)

	case key.Matches(msg, m.keys.Snackbar):
		message := m.nextMessage()
		m.mgr.ShowSnackbar(message, "Undo", nil, 0, m.placement)
		return m, nil

	case key.Matches(msg, m.keys.Action):
		s := m.newest(func(s *overlay.Surface) bool { return s.HasAction() })
		if s == nil || !m.mgr.InvokeAction(s.ID) {
			return m, status("No snackbar action to press", true)
		}
		return m, status(fmt.Sprintf("Action pressed on %q", s.Message), false)

	case key.Matches(msg, m.keys.Click):
		if s := m.newest(nil); s != nil {
			m.mgr.Click(s.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		if s := m.newest(nil); s != nil {
			m.mgr.Dismiss(s.ID, overlay.Closed)
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseAll):
		m.mgr.CloseAll()
		return m, nil

	case key.Matches(msg, m.keys.Placement):
		m.placement = nextPlacement(m.placement)
		return m, status("Snackbar placement: "+string(m.placement), false)

	case key.Matches(msg, m.keys.Copy):
		s := m.newest(nil)
		if s == nil {
			return m, status("Nothing to copy", true)
		}
		command, text := m.cfg.Clipboard, s.Message
		return m, func() tea.Msg {
			return copyResultMsg{err: copyText(context.Background(), command, text)}
		}
	}

	return m, nil
}

func (m Model) showToast(severity overlay.Severity) (tea.Model, tea.Cmd) {
	m.mgr.ShowToast(m.nextMessage(), severity, 0)
	return m, nil
}

func (m *Model) nextMessage() string {
	msg := sampleMessages[m.shown%len(sampleMessages)]
	m.shown++
	return msg
}

// newest returns the most recently shown live surface matching keep.
func (m Model) newest(keep func(*overlay.Surface) bool) *overlay.Surface {
	active := m.mgr.Active()
	for i := len(active) - 1; i >= 0; i-- {
		if keep == nil || keep(active[i]) {
			return active[i]
		}
	}
	return nil
}

func nextPlacement(p overlay.Placement) overlay.Placement {
	for i, candidate := range overlay.Placements {
		if candidate == p {
			return overlay.Placements[(i+1)%len(overlay.Placements)]
		}
	}
	return overlay.DefaultPlacement
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	rows := m.areaRows()
	canvas := blankCanvas(m.width, rows)
	cell := m.host.Cell()
	for _, s := range m.host.Visible() {
		col, row, w, h := cellRect(s.Bounds, cell)
		composite(canvas, renderSurface(s, w, h), col, row, m.width)
	}

	var b strings.Builder
	for _, line := range canvas {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	b.WriteString(dim.Render(strings.Repeat("─", max(0, m.width))))
	b.WriteByte('\n')
	b.WriteString(m.viewActive())
	b.WriteString(m.viewStatus())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewActive lists the newest live surfaces, one per row, padded to
// listRows rows.
func (m Model) viewActive() string {
	active := m.mgr.Active()
	if len(active) > listRows {
		active = active[len(active)-listRows:]
	}

	kindStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	now := m.now()
	for _, s := range active {
		label := s.Kind.String()
		if s.Kind == overlay.Toast {
			label += "/" + s.Severity.String()
		}
		expiry := "expires " + humanize.RelTime(s.ExpiresAt(), now, "ago", "from now")
		fmt.Fprintf(&b, "%s  %s  %s\n",
			kindStyle.Render(fmt.Sprintf("%-16s", label)),
			s.Message,
			dim.Render(expiry))
	}
	for i := len(active); i < listRows; i++ {
		if i == 0 {
			b.WriteString(dim.Render("no active overlays"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) viewStatus() string {
	if m.statusMsg == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
			Render(fmt.Sprintf("%d active, snackbars at %s", m.mgr.Count(), m.placement))
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	if m.statusErr {
		style = style.Foreground(lipgloss.Color("9"))
	}
	return style.Render(m.statusMsg)
}

// RunOptions configures the preview.
type RunOptions struct {
	Config  *config.Config
	Overlay overlay.Options
	Logger  *slog.Logger
}

// Run starts the preview and blocks until the user quits.
func Run(opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	host := NewHost(cfg.Preview.CellWidth, cfg.Preview.CellHeight)

	var p *tea.Program
	scheduler := overlay.NewScheduler(func(fn func()) { Dispatch(p)(fn) })
	mgr := overlay.NewManager(host, scheduler, opts.Overlay, logger)

	p = tea.NewProgram(New(mgr, host, cfg.Preview), tea.WithAltScreen())
	_, err := p.Run()

	mgr.CloseAll()
	return err
}
