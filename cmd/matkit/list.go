package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/dbus"
	"github.com/jmylchreest/matkit/internal/output"
)

var listOpts struct {
	format   string
	template string
	field    string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active overlays",
	Long: `List the overlays currently shown by matkitd, oldest first.

Output formats:
  plain   Readable blocks (default)
  dmenu   One line per overlay for dmenu/rofi/fuzzel
  json    JSON array
  ids     Overlay ids only, for piping to matkit dismiss

Templates receive .Index, .Entry (ID, Kind, Message, Shown) and
.RelativeTime, with truncate and upper helpers.`,
	Example: `  matkit list --format ids | xargs matkit dismiss
  matkit list --format dmenu --template '{{.Entry.Kind}}: {{truncate .Entry.Message 40}}'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, dmenu, json, ids)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template for plain and dmenu output")
	listCmd.Flags().StringVar(&listOpts.field, "field", "",
		"Print one field per overlay (id, kind, message, shown)")
}

func runList(cmd *cobra.Command, args []string) error {
	format := output.FormatType(strings.ToLower(listOpts.format))
	if !slices.Contains(output.FormatTypes, format) {
		return fmt.Errorf("unknown format %q", listOpts.format)
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	defer client.Close()

	active, err := client.ListActive()
	if err != nil {
		return err
	}

	entries := make([]output.Entry, 0, len(active))
	for _, a := range active {
		entries = append(entries, output.NewEntry(a.ID, a.Kind, a.Message))
	}

	if listOpts.field != "" {
		for _, e := range entries {
			fmt.Println(output.FormatField(e, listOpts.field))
		}
		return nil
	}

	if len(entries) == 0 && format != output.FormatJSON {
		logger.Debug("no active overlays")
		return nil
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	return output.NewFormatter(format, opts).Format(os.Stdout, entries)
}
