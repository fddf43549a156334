package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	godbus "github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/dbus"
	"github.com/jmylchreest/matkit/internal/overlay"
)

var toastOpts struct {
	severity string
	duration time.Duration
	wait     bool
}

var snackbarOpts struct {
	action    string
	placement string
	duration  time.Duration
	wait      bool
}

var toastCmd = &cobra.Command{
	Use:   "toast MESSAGE...",
	Short: "Show a toast",
	Long: `Show a toast on the running matkitd and print its id.

Toasts always appear top-right and are dismissed when clicked or when their
duration elapses. With --wait, matkit blocks until the toast is dismissed
and prints the reason (expired, clicked or closed).`,
	Example: `  matkit toast "Build finished"
  matkit toast --severity error --duration 10s "Deploy failed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToast,
}

var snackbarCmd = &cobra.Command{
	Use:   "snackbar MESSAGE...",
	Short: "Show a snackbar with an optional action",
	Long: `Show a snackbar on the running matkitd and print its id.

With --wait, matkit blocks until the snackbar is dismissed and prints the
reason. The reason is "action" when the action button was pressed, which
lets scripts react to it:

  [ "$(matkit snackbar --wait --action Undo 'File deleted' | tail -1)" = action ] && restore`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSnackbar,
}

func init() {
	rootCmd.AddCommand(toastCmd)
	rootCmd.AddCommand(snackbarCmd)

	toastCmd.Flags().StringVarP(&toastOpts.severity, "severity", "s", "",
		"Severity (info, success, warning, error; default from config)")
	toastCmd.Flags().DurationVarP(&toastOpts.duration, "duration", "d", 0,
		"How long the toast stays up (0 = daemon default)")
	toastCmd.Flags().BoolVarP(&toastOpts.wait, "wait", "w", false,
		"Wait for the toast to be dismissed and print the reason")

	snackbarCmd.Flags().StringVarP(&snackbarOpts.action, "action", "a", "",
		"Action button label")
	snackbarCmd.Flags().StringVarP(&snackbarOpts.placement, "placement", "p", "",
		"Placement ("+placementNames()+"; default from config)")
	snackbarCmd.Flags().DurationVarP(&snackbarOpts.duration, "duration", "d", 0,
		"How long the snackbar stays up (0 = daemon default)")
	snackbarCmd.Flags().BoolVarP(&snackbarOpts.wait, "wait", "w", false,
		"Wait for the snackbar to be dismissed and print the reason")
}

func placementNames() string {
	names := make([]string, len(overlay.Placements))
	for i, p := range overlay.Placements {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func runToast(cmd *cobra.Command, args []string) error {
	c := getConfig().Client

	severity := toastOpts.severity
	if severity == "" {
		severity = c.Severity
	}
	if _, err := overlay.ParseSeverity(severity); err != nil {
		return err
	}

	duration := toastOpts.duration
	if !cmd.Flags().Changed("duration") {
		duration = c.Duration.Duration()
	}

	message := strings.Join(args, " ")
	return show(toastOpts.wait, func(client *dbus.Client) (string, error) {
		return client.ShowToast(message, severity, duration)
	})
}

func runSnackbar(cmd *cobra.Command, args []string) error {
	c := getConfig().Client

	placement := snackbarOpts.placement
	if placement == "" {
		placement = c.Placement
	}
	if placement != "" {
		if _, err := overlay.ParsePlacement(placement); err != nil {
			return err
		}
	}

	duration := snackbarOpts.duration
	if !cmd.Flags().Changed("duration") {
		duration = c.Duration.Duration()
	}

	message := strings.Join(args, " ")
	return show(snackbarOpts.wait, func(client *dbus.Client) (string, error) {
		return client.ShowSnackbar(message, snackbarOpts.action, duration, placement)
	})
}

// show connects to the daemon, runs request and prints the new id. With
// wait it subscribes before the request so the dismissal cannot be missed.
func show(wait bool, request func(*dbus.Client) (string, error)) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var signals <-chan *godbus.Signal
	if wait {
		if signals, err = client.Subscribe(); err != nil {
			return err
		}
	}

	id, err := request(client)
	if err != nil {
		return err
	}
	fmt.Println(id)

	if !wait {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("waiting for dismissal", "id", id)
	d, err := dbus.WaitDismissed(ctx, signals, id)
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", id, err)
	}
	fmt.Println(d.Reason)
	return nil
}
