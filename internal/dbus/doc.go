// Package dbus implements the io.github.jmylchreest.Matkit D-Bus interface.
// It provides a server that shows toasts and snackbars on behalf of other
// processes, signals their dismissal, and a client used by the matkit CLI.
package dbus
