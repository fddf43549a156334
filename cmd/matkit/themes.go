package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and user themes from the themes directory.

User themes are YAML files in ~/.config/matkit/themes. A user file with a
bundled theme's name overrides it.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

var themesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a theme's palette as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loadPalette(args[0]).Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesShowCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no themes directory", "error", err)
	}

	themes, err := theme.ListAvailableThemes(dir)
	if err != nil {
		logger.Warn("failed to read themes directory", "dir", dir, "error", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range themes {
		source := t.Path
		if t.IsBundled {
			source = "bundled"
		}
		marker := ""
		if t.IsDefault {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s\t%s\n", t.Name, marker, source)
	}
	return w.Flush()
}
