package main

import (
	"fmt"
	"os"

	"zettel/cmd/zettel/ui"
	"zettel/internal/config"
	"zettel/internal/graph"
	"zettel/internal/logging"
	"zettel/internal/picker"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	notesDir string

	// Loaded configuration, available to all commands after PersistentPreRunE.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zettel",
	Short: "zettel - note graph browser with a fuzzy picker",
	Long: `zettel indexes a directory of markdown notes into a link graph and
navigates it from the terminal: fuzzy note selection with live preview,
backlink and forward-link queries, ripgrep-backed text search.

Notes carry their identity in YAML front matter (id, title, refs); links
between notes are ordinary markdown links with an id: destination.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if notesDir != "" {
			cfg.NotesDir = notesDir
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Initialize(level, cfg.Logging.File); err != nil {
			return err
		}

		// The line prompt is the baseline; fuzzy mode overrides it for every
		// call site until toggled off.
		picker.SetDefault(&picker.LineProvider{In: os.Stdin, Out: os.Stderr})
		if cfg.FuzzyMode {
			picker.Enable(ui.NewFuzzyProvider())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&notesDir, "notes-dir", "d", "", "Notes directory (overrides config)")

	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(refCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(backlinksCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(toggleModeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured link index.
func openStore() (*graph.Store, error) {
	return graph.Open(cfg.DatabasePath)
}
