package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/theme"
	"github.com/jmylchreest/matkit/internal/tui"
)

var previewOpts struct {
	theme string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview toasts and snackbars in the terminal",
	Long: `Launch an interactive terminal preview of the overlay manager.

Overlays are placed, styled and expired by the same manager the daemon
uses, with the terminal standing in for the screen.

Key bindings:
  t/i s w e   Show an info, success, warning or error toast
  n           Show a snackbar with an Undo action
  a/enter     Press the newest snackbar's action
  c           Click the newest overlay
  d           Close the newest overlay
  x           Close all overlays
  p           Cycle snackbar placement
  y           Copy the newest message to the clipboard
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOpts.theme, "theme", "",
		"Theme to preview (default from daemon config)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	daemonCfg := loadDaemonConfig()

	name := previewOpts.theme
	if name == "" {
		name = theme.ResolveName(daemonCfg.Theme.Name, daemonCfg.Theme.ColorScheme, false)
	}
	palette := loadPalette(name)

	return tui.Run(tui.RunOptions{
		Config:  getConfig(),
		Overlay: daemonCfg.OverlayOptions(palette),
		Logger:  logger,
	})
}

// loadDaemonConfig reads the daemon's config so previews match it. Errors
// fall back to defaults.
func loadDaemonConfig() *config.DaemonConfig {
	path, err := config.DaemonConfigPath()
	if err != nil {
		logger.Debug("no daemon config path", "error", err)
		return config.DefaultDaemonConfig()
	}
	dc, err := config.LoadDaemonConfig(path)
	if err != nil {
		logger.Warn("failed to load daemon config, using defaults", "path", path, "error", err)
		return config.DefaultDaemonConfig()
	}
	return dc
}

// loadPalette resolves a theme by name from the user themes directory or
// the bundled set.
func loadPalette(name string) *theme.Palette {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no themes directory", "error", err)
	}
	return theme.NewLoader(dir, logger).LoadTheme(name)
}
