package overlay

import "time"

const (
	// DefaultToastDuration is used for toasts requested with a non-positive duration.
	DefaultToastDuration = 3 * time.Second

	// MinSnackbarDuration is the floor applied to snackbar durations.
	MinSnackbarDuration = time.Second
)

// Request describes an overlay to show. It is consumed once by Manager.Show
// and never mutated afterwards.
type Request struct {
	Kind        Kind
	Severity    Severity
	Message     string
	ActionLabel string
	Action      func()
	Duration    time.Duration
	Placement   Placement
}

// HasAction reports whether the request carries an action element.
// Only snackbars with a non-empty label have one.
func (r Request) HasAction() bool {
	return r.Kind == Snackbar && r.ActionLabel != ""
}

// EffectiveDuration returns the countdown length after clamping.
// Snackbars never expire in less than MinSnackbarDuration. Toasts keep any
// positive duration and fall back to DefaultToastDuration otherwise.
func (r Request) EffectiveDuration() time.Duration {
	switch r.Kind {
	case Snackbar:
		return max(r.Duration, MinSnackbarDuration)
	default:
		if r.Duration <= 0 {
			return DefaultToastDuration
		}
		return r.Duration
	}
}

// EffectivePlacement returns where the surface is anchored. Toasts are
// always top-right; snackbars use the requested placement or the default.
func (r Request) EffectivePlacement() Placement {
	if r.Kind == Toast {
		return TopRight
	}
	return r.Placement.OrDefault()
}
