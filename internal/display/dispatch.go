package display

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// Dispatch queues fn on the GTK main loop. It is an overlay.Dispatcher.
func Dispatch(fn func()) {
	glib.IdleAdd(fn)
}

// Invoke runs fn on the GTK main loop and waits for it to return. It must
// not be called from the main loop itself.
func Invoke(fn func()) {
	done := make(chan struct{})
	glib.IdleAdd(func() {
		defer close(done)
		fn()
	})
	<-done
}

// SystemDark reports whether libadwaita prefers a dark colour scheme.
func SystemDark() bool {
	return adw.StyleManagerGetDefault().Dark()
}
