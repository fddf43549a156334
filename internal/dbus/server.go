package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/matkit/internal/overlay"
)

// Controller is what the server drives. *daemon.Daemon implements it.
type Controller interface {
	Show(req overlay.Request) string
	Dismiss(id string) bool
	CloseAll()
	Active() []*overlay.Surface
}

// emitter sends signals. *dbus.Conn implements it.
type emitter interface {
	Emit(path dbus.ObjectPath, name string, values ...any) error
}

// Server implements the io.github.jmylchreest.Matkit D-Bus interface.
type Server struct {
	conn    *dbus.Conn
	emitter emitter
	ctrl    Controller
	logger  *slog.Logger

	mu      sync.RWMutex
	invoke  func(func())
	running bool
}

// NewServer creates a server driving ctrl.
func NewServer(ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		ctrl:   ctrl,
		logger: logger,
		invoke: func(fn func()) { fn() },
	}
}

// SetInvoker sets how method calls reach the controller. GTK hosts pass a
// function that runs fn on the main loop and waits for it.
func (s *Server) SetInvoker(invoke func(func())) {
	if invoke == nil {
		invoke = func(fn func()) { fn() }
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoke = invoke
}

func (s *Server) call(fn func()) {
	s.mu.RLock()
	invoke := s.invoke
	s.mu.RUnlock()
	invoke(fn)
}

// Start connects to the session bus and exports the service.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	// Only the interface methods are exported, not Start/Stop and friends.
	if err := conn.ExportMethodTable(s.methodTable(), DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(DBusPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: matkitMethods(),
				Signals: matkitSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.mu.Lock()
	s.conn = conn
	s.emitter = conn
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// The session bus connection is shared; leave it open.
	}
	s.emitter = nil

	s.logger.Info("D-Bus server stopped")
	return nil
}

// ShowToast shows a toast.
// D-Bus method: ShowToast(ssi) -> s
func (s *Server) ShowToast(message, severity string, durationMs int32) (string, *dbus.Error) {
	s.logger.Debug("ShowToast called", "severity", severity, "duration_ms", durationMs)

	req, err := ToastRequest(message, severity, durationMs)
	if err != nil {
		return "", invalidArgs(err)
	}
	var id string
	s.call(func() { id = s.ctrl.Show(req) })
	return id, nil
}

// ShowSnackbar shows a snackbar. Invoking its action emits ActionInvoked.
// D-Bus method: ShowSnackbar(ssis) -> s
func (s *Server) ShowSnackbar(message, actionLabel string, durationMs int32, placement string) (string, *dbus.Error) {
	s.logger.Debug("ShowSnackbar called", "action", actionLabel, "duration_ms", durationMs, "placement", placement)

	req, err := SnackbarRequest(message, actionLabel, durationMs, placement)
	if err != nil {
		return "", invalidArgs(err)
	}
	var id string
	s.call(func() { id = s.ctrl.Show(req) })
	return id, nil
}

// Dismiss closes a surface. Unknown ids are ignored.
// D-Bus method: Dismiss(s)
func (s *Server) Dismiss(id string) *dbus.Error {
	s.logger.Debug("Dismiss called", "id", id)
	s.call(func() { s.ctrl.Dismiss(id) })
	return nil
}

// CloseAll closes every surface.
// D-Bus method: CloseAll()
func (s *Server) CloseAll() *dbus.Error {
	s.logger.Debug("CloseAll called")
	s.call(s.ctrl.CloseAll)
	return nil
}

// ListActive lists live surfaces in show order.
// D-Bus method: ListActive() -> a(sss)
func (s *Server) ListActive() ([]ActiveEntry, *dbus.Error) {
	var entries []ActiveEntry
	s.call(func() {
		active := s.ctrl.Active()
		entries = make([]ActiveEntry, 0, len(active))
		for _, surface := range active {
			entries = append(entries, EntryFromSurface(surface))
		}
	})
	return entries, nil
}

func (s *Server) methodTable() map[string]any {
	return map[string]any{
		"ShowToast":    s.ShowToast,
		"ShowSnackbar": s.ShowSnackbar,
		"Dismiss":      s.Dismiss,
		"CloseAll":     s.CloseAll,
		"ListActive":   s.ListActive,
	}
}

func matkitMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "ShowToast",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "severity", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "i", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "ShowSnackbar",
			Args: []introspect.Arg{
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "action_label", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "i", Direction: "in"},
				{Name: "placement", Type: "s", Direction: "in"},
				{Name: "id", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Dismiss",
			Args: []introspect.Arg{
				{Name: "id", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "CloseAll",
		},
		{
			Name: "ListActive",
			Args: []introspect.Arg{
				{Name: "surfaces", Type: "a(sss)", Direction: "out"},
			},
		},
	}
}

func matkitSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: SignalActionInvoked,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
			},
		},
		{
			Name: SignalDismissed,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "reason", Type: "s"},
			},
		},
	}
}
