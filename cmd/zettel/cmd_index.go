package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"zettel/internal/config"
	"zettel/internal/logging"
	"zettel/internal/notes"

	"github.com/spf13/cobra"
)

var indexWatch bool

// initCmd writes a default config and builds the first index.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config and build the first index",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	} else {
		fmt.Printf("config already at %s\n", path)
	}

	if err := os.MkdirAll(cfg.NotesDir, 0755); err != nil {
		return err
	}
	return runIndexOnce(cmd)
}

// indexCmd scans the notes directory into the link index.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the notes directory into the link index",
	Long: `Walks the notes directory, parses front matter and links out of every
markdown file and rebuilds the sqlite index. Unchanged files are skipped
by modification time and content hash.

With --watch the command keeps running and re-indexes files as they
change on disk.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "Keep watching the notes directory for changes")
}

func runIndexOnce(cmd *cobra.Command) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := notes.NewScanner(store, cfg.NotesDir)
	n, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d files from %s\n", n, cfg.NotesDir)
	return nil
}

func runIndex(cmd *cobra.Command, args []string) error {
	if !indexWatch {
		return runIndexOnce(cmd)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	log := logging.Get(logging.CategoryScan)
	scanner := notes.NewScanner(store, cfg.NotesDir)
	n, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}
	log.Infof("initial scan indexed %d files", n)

	watcher, err := notes.NewWatcher(scanner, cfg.NotesDir)
	if err != nil {
		return err
	}
	if err := watcher.Start(cmd.Context()); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("watching %s, press Ctrl+C to stop\n", cfg.NotesDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Infof("received %v, shutting down", sig)
	case <-cmd.Context().Done():
	}
	return nil
}

// statusCmd prints index counts.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("notes dir: %s\n", cfg.NotesDir)
	fmt.Printf("database:  %s\n", cfg.DatabasePath)
	for _, table := range []string{"files", "nodes", "refs", "links"} {
		fmt.Printf("%-6s %d\n", table, stats[table])
	}
	return nil
}
