// Package daemon provides the main orchestration for matkitd.
// It ties the overlay manager to the daemon configuration, the theme
// loader and configuration hot-reload, independent of any toolkit.
package daemon
