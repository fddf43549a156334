// Package overlay manages transient overlay surfaces: severity-coloured
// toasts and snackbars with an optional action.
//
// A Manager creates a Surface for each request, places it against the host's
// work area, opens a window through the Host and arms a one-shot countdown on
// the Scheduler. A surface is dismissed when the countdown fires, when a toast
// is clicked, when a snackbar action is invoked, or when it is closed
// explicitly. Dismissal is idempotent: the first call stops the countdown,
// hides and destroys the window and notifies observers; later calls do nothing.
//
// The package does not depend on any windowing toolkit. Hosts paint a surface
// by calling Surface.Paint with a paint.Canvas and then drawing the text
// elements returned by Surface.Elements on top.
package overlay
