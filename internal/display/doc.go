// Package display hosts overlays in GTK4 layer-shell windows.
//
// Each surface gets its own top-left anchored window sized to the surface's
// shadow-padded bounds. A drawing area paints the shadow and body through a
// cairo-backed paint.Canvas and labels render the glyph, message and action
// on top. Input is forwarded to a Handler, normally the overlay manager.
//
// Everything here runs on the GTK main loop. Use Dispatch to get there from
// timers and Invoke from D-Bus handlers that need a result.
package display
