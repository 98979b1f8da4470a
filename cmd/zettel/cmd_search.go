package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"zettel/internal/graph"
	"zettel/internal/picker"
	"zettel/internal/search"

	"github.com/spf13/cobra"
)

// searchCmd runs the configured live grep over the notes directory.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Text search across the notes directory",
	Long: `Runs the configured search command (default: ripgrep) over the notes
directory and opens the selector on the hits. The query argument pre-seeds
the search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	g := &search.Grep{
		Command: cfg.Search.Command,
		Args:    cfg.Search.Args,
		Dir:     cfg.NotesDir,
	}
	if d, err := time.ParseDuration(cfg.Search.Timeout); err == nil {
		g.Timeout = d
	}

	hits, err := g.Run(cmd.Context(), query)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return fmt.Errorf("no matches for %q: %w", query, graph.ErrNoResults)
	}

	cands, byLabel := hitCandidates(hits)

	sel, err := picker.SelectNode(cmd.Context(), cands, picker.Options{
		Prompt:       fmt.Sprintf("Search %q: ", query),
		RequireMatch: true,
	})
	if err != nil {
		return err
	}

	hit := byLabel[sel.Candidate.Label]
	return openAtLine(hit.Path, hit.Line)
}

// hitCandidates labels search hits for the selector. Hit paths come back
// relative to the notes dir, so the candidate path is resolved to an
// absolute one for the preview to open from any working directory.
func hitCandidates(hits []search.Hit) ([]picker.Candidate, map[string]search.Hit) {
	cands := make([]picker.Candidate, len(hits))
	byLabel := make(map[string]search.Hit, len(hits))
	for i, h := range hits {
		label := fmt.Sprintf("%s:%d: %s", h.Path, h.Line, strings.TrimSpace(h.Text))
		path := h.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.NotesDir, path)
		}
		cands[i] = picker.Candidate{Label: label, Kind: picker.KindFile, Path: path}
		byLabel[label] = h
	}
	return cands, byLabel
}
