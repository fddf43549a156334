package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss ID...",
	Short: "Dismiss overlays by id",
	Long: `Dismiss one or more overlays by the id printed when they were shown.

Unknown ids are ignored by the daemon.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDismiss,
}

var closeAllCmd = &cobra.Command{
	Use:   "close-all",
	Short: "Dismiss every overlay",
	Args:  cobra.NoArgs,
	RunE:  runCloseAll,
}

func init() {
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(closeAllCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	for _, id := range args {
		if err := client.Dismiss(id); err != nil {
			return fmt.Errorf("failed to dismiss %s: %w", id, err)
		}
		logger.Debug("dismissed", "id", id)
	}
	return nil
}

func runCloseAll(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return client.CloseAll()
}
