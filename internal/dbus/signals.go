package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/matkit/internal/overlay"
)

func (s *Server) emit(member string, values ...any) error {
	s.mu.RLock()
	e := s.emitter
	s.mu.RUnlock()
	if e == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := e.Emit(DBusPath, DBusInterface+"."+member, values...); err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", member, err)
	}
	return nil
}

// EmitActionInvoked emits the ActionInvoked signal.
func (s *Server) EmitActionInvoked(id string) error {
	if err := s.emit(SignalActionInvoked, id); err != nil {
		return err
	}
	s.logger.Debug("emitted ActionInvoked signal", "id", id)
	return nil
}

// EmitDismissed emits the Dismissed signal.
func (s *Server) EmitDismissed(id string, reason overlay.DismissReason) error {
	if err := s.emit(SignalDismissed, id, reason.String()); err != nil {
		return err
	}
	s.logger.Debug("emitted Dismissed signal", "id", id, "reason", reason.String())
	return nil
}

// HandleDismissed is an overlay.DismissedFunc. Action dismissals emit
// ActionInvoked before Dismissed.
func (s *Server) HandleDismissed(surface *overlay.Surface, reason overlay.DismissReason) {
	if reason == overlay.ActionInvoked {
		if err := s.EmitActionInvoked(surface.ID); err != nil {
			s.logger.Warn("failed to emit action signal", "id", surface.ID, "error", err)
		}
	}
	if err := s.EmitDismissed(surface.ID, reason); err != nil {
		s.logger.Warn("failed to emit dismissed signal", "id", surface.ID, "error", err)
	}
}

// Connection returns the underlying D-Bus connection.
func (s *Server) Connection() *dbus.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}
