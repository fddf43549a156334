package overlay

import (
	"crypto/rand"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/matkit/internal/paint"
	"github.com/jmylchreest/matkit/internal/theme"
)

// ShownFunc observes surfaces after they are shown.
type ShownFunc func(s *Surface)

// DismissedFunc observes surfaces after they are dismissed.
type DismissedFunc func(s *Surface, reason DismissReason)

// Options configures a Manager.
type Options struct {
	Layout  Layout
	Radius  paint.CornerRadius
	Shadow  paint.ShadowSettings
	Palette *theme.Palette
}

// DefaultOptions returns Material defaults: 4px corners, layered shadow and
// the bundled palette.
func DefaultOptions() Options {
	return Options{
		Layout:  DefaultLayout(),
		Radius:  paint.Uniform(4),
		Shadow:  paint.DefaultShadow(),
		Palette: theme.Default(),
	}
}

// Manager owns overlay surfaces from creation to disposal. No operation
// returns an error to the caller; failures degrade and are logged.
type Manager struct {
	host      Host
	scheduler Scheduler
	logger    *slog.Logger

	mu       sync.RWMutex
	opts     Options
	surfaces map[string]*Surface
	order    []string

	onShown     []ShownFunc
	onDismissed []DismissedFunc
}

// NewManager creates a manager. host may be nil for headless use, in which
// case surfaces are tracked and expire but never reach a window. A nil
// scheduler uses NewScheduler(nil).
func NewManager(host Host, scheduler Scheduler, opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if scheduler == nil {
		scheduler = NewScheduler(nil)
	}
	if opts.Palette == nil {
		opts.Palette = theme.Default()
	}

	return &Manager{
		host:      host,
		scheduler: scheduler,
		logger:    logger,
		opts:      opts,
		surfaces:  make(map[string]*Surface),
	}
}

// SetOptions replaces geometry, shadow and palette for surfaces shown later.
func (m *Manager) SetOptions(opts Options) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if opts.Palette == nil {
		opts.Palette = m.opts.Palette
	}
	m.opts = opts
}

// SetPalette replaces the palette. Live surfaces are restyled and repainted.
func (m *Manager) SetPalette(p *theme.Palette) {
	if p == nil {
		return
	}
	m.mu.Lock()
	m.opts.Palette = p
	m.mu.Unlock()

	for _, s := range m.Active() {
		s.restyle(StyleFor(p, s.Kind, s.Severity))
	}
	m.Invalidate()
}

// Options returns the current options.
func (m *Manager) Options() Options {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts
}

// OnShown registers an observer. Observers run in registration order.
func (m *Manager) OnShown(fn ShownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onShown = append(m.onShown, fn)
}

// OnDismissed registers an observer. Observers run in registration order,
// exactly once per surface.
func (m *Manager) OnDismissed(fn DismissedFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDismissed = append(m.onDismissed, fn)
}

// ShowToast shows a severity-coloured toast at the top-right of the work
// area. An empty message still produces a toast.
func (m *Manager) ShowToast(message string, severity Severity, duration time.Duration) string {
	return m.Show(Request{
		Kind:     Toast,
		Severity: severity,
		Message:  message,
		Duration: duration,
	})
}

// ShowSnackbar shows a snackbar with an optional trailing action.
// An empty actionLabel means no action element.
func (m *Manager) ShowSnackbar(message, actionLabel string, action func(), duration time.Duration, placement Placement) string {
	return m.Show(Request{
		Kind:        Snackbar,
		Message:     message,
		ActionLabel: actionLabel,
		Action:      action,
		Duration:    duration,
		Placement:   placement,
	})
}

// Show creates, places, opens and arms a surface for req and returns its ID.
func (m *Manager) Show(req Request) string {
	m.mu.RLock()
	opts := m.opts
	m.mu.RUnlock()

	size := opts.Layout.Size(req.Kind)
	origin := m.place(size, req.EffectivePlacement())
	style := StyleFor(opts.Palette, req.Kind, req.Severity)

	s := newSurface(newID(), req, origin, size, opts.Layout, style, opts.Radius, opts.Shadow)

	m.mu.Lock()
	m.surfaces[s.ID] = s
	m.order = append(m.order, s.ID)
	m.mu.Unlock()

	m.open(s)
	m.arm(s, s.Duration)

	m.logger.Debug("showed overlay",
		"id", s.ID,
		"kind", s.Kind,
		"severity", s.Severity,
		"placement", s.Placement,
		"duration", s.Duration,
		"x", s.Bounds.Min.X,
		"y", s.Bounds.Min.Y,
	)

	m.mu.RLock()
	observers := append([]ShownFunc(nil), m.onShown...)
	m.mu.RUnlock()
	for _, fn := range observers {
		fn(s)
	}

	return s.ID
}

// place positions a surface, falling back to the origin when the work area
// is unavailable.
func (m *Manager) place(size image.Point, p Placement) image.Point {
	if m.host == nil {
		return image.Point{}
	}
	wa, err := m.host.WorkArea()
	if err != nil || wa.Empty() {
		m.logger.Warn("work area unavailable, placing overlay at origin", "error", err)
		return image.Point{}
	}
	return Place(wa, size, p)
}

func (m *Manager) open(s *Surface) {
	if m.host == nil {
		return
	}
	w, err := m.host.Open(s)
	if err != nil {
		m.logger.Warn("failed to open overlay window", "id", s.ID, "error", err)
		return
	}

	s.mu.Lock()
	if s.state == Consumed {
		s.mu.Unlock()
		w.Destroy()
		return
	}
	s.window = w
	s.mu.Unlock()

	w.Present()
}

// arm starts a countdown for s. Any previous countdown is stopped first.
// Returns false if s is already consumed.
func (m *Manager) arm(s *Surface, d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Consumed {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.generation++
	gen := s.generation
	s.state = Armed
	s.expiresAt = time.Now().Add(d)
	s.timer = m.scheduler.AfterFunc(d, func() { m.expire(s, gen) })
	return true
}

// expire runs when a countdown fires. A stale or cancelled countdown is a no-op.
func (m *Manager) expire(s *Surface, gen uint64) {
	s.mu.Lock()
	if s.state != Armed || s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.state = Firing
	s.timer = nil
	s.mu.Unlock()

	m.dismiss(s, Expired)
}

// Rearm restarts the countdown of a live surface with a new duration.
// Snackbar durations keep their floor. Returns false for unknown or
// dismissed surfaces.
func (m *Manager) Rearm(id string, d time.Duration) bool {
	s, ok := m.Get(id)
	if !ok {
		return false
	}
	d = Request{Kind: s.Kind, Duration: d}.EffectiveDuration()
	return m.arm(s, d)
}

// Click handles a click on a surface body. Toasts are dismissed; snackbars
// ignore body clicks.
func (m *Manager) Click(id string) bool {
	s, ok := m.Get(id)
	if !ok || s.Kind != Toast {
		return false
	}
	return m.dismiss(s, Clicked)
}

// InvokeAction runs a snackbar's action callback synchronously and then
// dismisses the surface, even if the callback panics or is absent.
func (m *Manager) InvokeAction(id string) bool {
	s, ok := m.Get(id)
	if !ok || !s.HasAction() {
		return false
	}
	s.mu.Lock()
	consumed := s.state == Consumed
	action := s.action
	s.mu.Unlock()
	if consumed {
		return false
	}

	defer m.dismiss(s, ActionInvoked)
	if action != nil {
		m.runAction(s.ID, action)
	}
	return true
}

func (m *Manager) runAction(id string, action func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("overlay action panicked", "id", id, "panic", fmt.Sprint(r))
		}
	}()
	action()
}

// Dismiss dismisses a surface. Dismissing an unknown or already dismissed
// surface is a no-op and returns false.
func (m *Manager) Dismiss(id string, reason DismissReason) bool {
	m.mu.RLock()
	s, ok := m.surfaces[id]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return m.dismiss(s, reason)
}

// dismiss stops the countdown, hides and destroys the window, clears
// references and notifies observers. Only the first call has any effect.
func (m *Manager) dismiss(s *Surface, reason DismissReason) bool {
	s.mu.Lock()
	if s.state == Consumed {
		s.mu.Unlock()
		return false
	}
	s.state = Consumed
	s.reason = reason
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	w := s.window
	s.window = nil
	s.mu.Unlock()

	if w != nil {
		w.Hide()
		w.Destroy()
	}

	s.mu.Lock()
	s.disposed = true
	s.action = nil
	s.mu.Unlock()

	m.mu.Lock()
	delete(m.surfaces, s.ID)
	for i, id := range m.order {
		if id == s.ID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	observers := append([]DismissedFunc(nil), m.onDismissed...)
	m.mu.Unlock()

	m.logger.Debug("dismissed overlay", "id", s.ID, "reason", reason)

	for _, fn := range observers {
		fn(s, reason)
	}
	return true
}

// CloseAll dismisses every live surface with reason Closed.
func (m *Manager) CloseAll() {
	for _, s := range m.Active() {
		m.dismiss(s, Closed)
	}
}

// Get returns a live surface by ID.
func (m *Manager) Get(id string) (*Surface, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.surfaces[id]
	return s, ok
}

// Active returns live surfaces in the order they were shown.
func (m *Manager) Active() []*Surface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Surface, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.surfaces[id])
	}
	return out
}

// Count returns the number of live surfaces.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.surfaces)
}

// Invalidate asks every live window to repaint.
func (m *Manager) Invalidate() {
	for _, s := range m.Active() {
		s.mu.Lock()
		w := s.window
		s.mu.Unlock()
		if w != nil {
			w.Invalidate()
		}
	}
}

func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
