package main

import (
	"fmt"
	"strings"

	"github.com/amonks/todoapp/task"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings",
	Long: `Show or change display settings.

The theme selects the markdown color scheme used by "td task show". The
accent color is stored as given; the names blue, cyan, violet and orange
map to the built-in palette.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var (
	settingsTheme  string
	settingsAccent string
	settingsJSON   bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme (dark, light)")
	settingsCmd.Flags().StringVar(&settingsAccent, "accent", "", "Accent color (palette name or color string)")
	settingsCmd.Flags().BoolVar(&settingsJSON, "json", false, "Output as JSON")
}

func runSettings(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	data := a.snapshot()
	if hasChangedFlags(cmd, "theme", "accent") {
		var patch task.SettingsPatch
		if cmd.Flags().Changed("theme") {
			theme := task.Theme(strings.ToLower(strings.TrimSpace(settingsTheme)))
			patch.Theme = &theme
		}
		if cmd.Flags().Changed("accent") {
			patch.AccentColor = &settingsAccent
		}
		if data, err = a.update(func(data task.AppData) (task.AppData, error) {
			return task.UpdateSettings(data, patch)
		}); err != nil {
			return err
		}
	}

	if settingsJSON {
		return encodeJSON(cmd.OutOrStdout(), data.Settings)
	}

	accent := data.Settings.AccentColor
	if resolved, ok := task.AccentColors[accent]; ok {
		accent = fmt.Sprintf("%s (%s)", accent, resolved)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Theme:  %s\nAccent: %s\n", data.Settings.Theme, accent)
	return nil
}
