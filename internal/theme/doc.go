// Package theme provides colour palettes for overlays and Material controls.
// Palettes are YAML files; a set is bundled into the binary and users can
// override or add their own under the matkit themes directory, with
// hot-reload on change.
package theme
