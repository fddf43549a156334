package main

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/render"
	"github.com/jmylchreest/matkit/internal/theme"
)

var renderOpts struct {
	output     string
	width      int
	height     int
	theme      string
	noControls bool
	toasts     []string
	snackbars  []string
	action     string
	placement  string
	scale      float64
	gpu        bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a PNG preview of app chrome and overlays",
	Long: `Render a still preview of overlays on top of Material app chrome.

Toasts are given as severity:message, for example "error:Disk full".
A bare message is an info toast. Overlays are laid out by the same manager
matkitd uses, inside the area the app bar, bottom bar and drawer leave free.

With no toasts or snackbars a sample toast and snackbar are drawn.`,
	Example: `  matkit render -o preview.png
  matkit render --toast "success:Saved" --snackbar "Item deleted" --action Undo --theme dark`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOpts.output, "output", "o", "matkit.png",
		"Output file (format from extension, - for PNG on stdout)")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 0,
		"Image width (default from config)")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", 0,
		"Image height (default from config)")
	renderCmd.Flags().StringVar(&renderOpts.theme, "theme", "",
		"Theme name (default from config)")
	renderCmd.Flags().BoolVar(&renderOpts.noControls, "no-controls", false,
		"Draw overlays on a bare background")
	renderCmd.Flags().StringArrayVarP(&renderOpts.toasts, "toast", "t", nil,
		"Toast as severity:message (repeatable)")
	renderCmd.Flags().StringArrayVarP(&renderOpts.snackbars, "snackbar", "s", nil,
		"Snackbar message (repeatable)")
	renderCmd.Flags().StringVarP(&renderOpts.action, "action", "a", "",
		"Action label for every snackbar")
	renderCmd.Flags().StringVarP(&renderOpts.placement, "placement", "p", "",
		"Snackbar placement ("+placementNames()+")")
	renderCmd.Flags().Float64Var(&renderOpts.scale, "scale", 1,
		"Resize the output by this factor")
	renderCmd.Flags().BoolVar(&renderOpts.gpu, "gpu", false,
		"Render shapes with Gio's headless GPU renderer")
}

func runRender(cmd *cobra.Command, args []string) error {
	rc := getConfig().Render
	daemonCfg := loadDaemonConfig()

	width, height := rc.Width, rc.Height
	if renderOpts.width > 0 {
		width = renderOpts.width
	}
	if renderOpts.height > 0 {
		height = renderOpts.height
	}

	name := renderOpts.theme
	if name == "" {
		name = rc.Theme
	}
	if name == "" {
		name = theme.ResolveName(daemonCfg.Theme.Name, daemonCfg.Theme.ColorScheme, false)
	}
	palette := loadPalette(name)

	requests, err := renderRequests()
	if err != nil {
		return err
	}

	sc := render.Scene{
		Width:    width,
		Height:   height,
		Palette:  palette,
		Overlay:  daemonCfg.OverlayOptions(palette),
		Controls: rc.Controls && !renderOpts.noControls,
		Requests: requests,
		Scale:    renderOpts.scale,
	}

	renderFn := render.Render
	if renderOpts.gpu {
		renderFn = render.RenderGPU
	}
	img, err := renderFn(sc, logger)
	if err != nil {
		return err
	}

	return writeImage(img, renderOpts.output)
}

// renderRequests builds overlay requests from the flags, or a sample set
// when none were given.
func renderRequests() ([]overlay.Request, error) {
	var placement overlay.Placement
	if renderOpts.placement != "" {
		p, err := overlay.ParsePlacement(renderOpts.placement)
		if err != nil {
			return nil, err
		}
		placement = p
	}

	var reqs []overlay.Request
	for _, arg := range renderOpts.toasts {
		sev, msg := overlay.Info, arg
		if name, rest, ok := strings.Cut(arg, ":"); ok {
			parsed, err := overlay.ParseSeverity(name)
			if err != nil {
				return nil, fmt.Errorf("toast %q: %w", arg, err)
			}
			sev, msg = parsed, rest
		}
		reqs = append(reqs, overlay.Request{Kind: overlay.Toast, Severity: sev, Message: msg})
	}
	for _, msg := range renderOpts.snackbars {
		reqs = append(reqs, overlay.Request{
			Kind:        overlay.Snackbar,
			Message:     msg,
			ActionLabel: renderOpts.action,
			Placement:   placement,
		})
	}
	if len(reqs) > 0 {
		return reqs, nil
	}

	return []overlay.Request{
		{Kind: overlay.Toast, Severity: overlay.Success, Message: "Changes saved"},
		{Kind: overlay.Snackbar, Message: "Conversation archived", ActionLabel: "Undo", Placement: placement},
	}, nil
}

func writeImage(img image.Image, path string) error {
	if path == "-" {
		return imaging.Encode(os.Stdout, img, imaging.PNG)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	logger.Info("rendered preview", "path", path)
	fmt.Println(path)
	return nil
}
