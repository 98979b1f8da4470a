package main

import (
	"fmt"
	"path/filepath"

	"zettel/internal/graph"
	"zettel/internal/picker"

	"github.com/spf13/cobra"
)

// findCmd selects among every indexed file path.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Select among all indexed note files",
	Long: `Opens the selector over every file path the index knows about and
opens the chosen file for editing. Unlike the note selector this matches
on paths, so subdirectory structure is searchable.`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func runFind(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	paths, err := store.Files()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("index is empty, run zettel index first: %w", graph.ErrNoResults)
	}

	cands := make([]picker.Candidate, len(paths))
	for i, p := range paths {
		label := p
		if rel, err := filepath.Rel(cfg.NotesDir, p); err == nil && !filepath.IsAbs(rel) && rel[0] != '.' {
			label = rel
		}
		cands[i] = picker.Candidate{Label: label, Kind: picker.KindFile, Path: p}
	}

	sel, err := picker.SelectNode(cmd.Context(), cands, picker.Options{
		Prompt:       "File: ",
		RequireMatch: true,
	})
	if err != nil {
		return err
	}
	return openInEditor(sel.Candidate.File(), 0)
}
