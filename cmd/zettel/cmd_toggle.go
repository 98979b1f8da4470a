package main

import (
	"fmt"

	"zettel/cmd/zettel/ui"
	"zettel/internal/config"
	"zettel/internal/logging"
	"zettel/internal/picker"

	"github.com/spf13/cobra"
)

// toggleModeCmd flips the fuzzy picker on or off.
var toggleModeCmd = &cobra.Command{
	Use:   "toggle-mode",
	Short: "Toggle the fuzzy picker on or off",
	Long: `Switches every prompt between the fuzzy full-screen picker and the
plain line reader, and persists the choice to the config file.

Toggling in either direction is idempotent at the picker layer: enabling
twice keeps one saved baseline, disabling twice restores it once.`,
	Args: cobra.NoArgs,
	RunE: runToggleMode,
}

func runToggleMode(cmd *cobra.Command, args []string) error {
	cfg.FuzzyMode = !cfg.FuzzyMode

	if cfg.FuzzyMode {
		picker.Enable(ui.NewFuzzyProvider())
	} else {
		picker.Disable()
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to persist mode: %w", err)
	}

	state := "off"
	if cfg.FuzzyMode {
		state = "on"
	}
	logging.Get(logging.CategoryPicker).Infof("fuzzy mode %s", state)
	fmt.Printf("fuzzy mode %s\n", state)
	return nil
}
