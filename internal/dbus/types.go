package dbus

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/matkit/internal/overlay"
)

const (
	// DBusInterface is the matkit interface name.
	DBusInterface = "io.github.jmylchreest.Matkit"
	// DBusPath is the matkit object path.
	DBusPath dbus.ObjectPath = "/io/github/jmylchreest/Matkit"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.Matkit"

	// ErrInvalidArgs is returned for unparseable severities or placements.
	ErrInvalidArgs = "org.freedesktop.DBus.Error.InvalidArgs"
)

// Signal member names.
const (
	SignalActionInvoked = "ActionInvoked"
	SignalDismissed     = "Dismissed"
)

// ActiveEntry describes a live surface. It marshals as (sss).
type ActiveEntry struct {
	ID      string
	Kind    string
	Message string
}

// EntryFromSurface converts a surface to its wire form.
func EntryFromSurface(s *overlay.Surface) ActiveEntry {
	return ActiveEntry{ID: s.ID, Kind: s.Kind.String(), Message: s.Message}
}

// Dismissal is a received Dismissed or ActionInvoked signal.
type Dismissal struct {
	ID     string
	Reason string // "expired", "clicked", "action", "closed"
}

// msToDuration converts a wire duration. Non-positive values mean the
// daemon default.
func msToDuration(ms int32) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// ToastRequest builds a toast request from wire arguments.
// An empty severity means info.
func ToastRequest(message, severity string, durationMs int32) (overlay.Request, error) {
	sev, err := overlay.ParseSeverity(severity)
	if err != nil {
		return overlay.Request{}, err
	}
	return overlay.Request{
		Kind:     overlay.Toast,
		Severity: sev,
		Message:  message,
		Duration: msToDuration(durationMs),
	}, nil
}

// SnackbarRequest builds a snackbar request from wire arguments.
// An empty placement means the daemon default.
func SnackbarRequest(message, actionLabel string, durationMs int32, placement string) (overlay.Request, error) {
	var p overlay.Placement
	if placement != "" {
		var err error
		if p, err = overlay.ParsePlacement(placement); err != nil {
			return overlay.Request{}, err
		}
	}
	return overlay.Request{
		Kind:        overlay.Snackbar,
		Message:     message,
		ActionLabel: actionLabel,
		Duration:    msToDuration(durationMs),
		Placement:   p,
	}, nil
}

func invalidArgs(err error) *dbus.Error {
	return dbus.NewError(ErrInvalidArgs, []any{fmt.Sprint(err)})
}
