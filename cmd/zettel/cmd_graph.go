package main

import (
	"errors"
	"fmt"

	"zettel/internal/graph"
	"zettel/internal/picker"

	"github.com/spf13/cobra"
)

// backlinksCmd lists the notes linking into the current note.
var backlinksCmd = &cobra.Command{
	Use:   "backlinks [note]",
	Short: "Select among the notes that link to the current note",
	Long: `Queries the link graph for id-typed edges pointing at the current
note and opens the selector over the distinct source notes.

The current note is the argument, or default_note from config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBacklinks,
}

func runBacklinks(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	node, err := currentNode(store, args)
	if err != nil {
		return err
	}

	sources, err := store.BacklinkSources(node.ID, "id")
	if errors.Is(err, graph.ErrNoResults) {
		return fmt.Errorf("no backlinks for %q: %w", node.Title, err)
	}
	if err != nil {
		return err
	}

	set := make(map[string]bool, len(sources))
	for _, id := range sources {
		set[id] = true
	}

	cands, err := nodeCandidates(store)
	if err != nil {
		return err
	}
	opts := picker.Options{
		Prompt:       fmt.Sprintf("Backlinks of %s: ", node.Title),
		RequireMatch: true,
		Filter:       func(c picker.Candidate) bool { return c.Node != nil && set[c.Node.ID] },
	}
	return selectNode(cmd.Context(), cands, opts)
}

// linksCmd lists the notes the current note links to.
var linksCmd = &cobra.Command{
	Use:   "links [note]",
	Short: "Select among the notes the current note links to",
	Long: `Parses the current note's body for id-typed links and opens the
selector over the target notes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	node, err := currentNode(store, args)
	if err != nil {
		return err
	}

	targets, err := forwardTargets(node)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no forward links in %q: %w", node.Title, graph.ErrNoResults)
	}

	set := make(map[string]bool, len(targets))
	for _, id := range targets {
		set[id] = true
	}

	cands, err := nodeCandidates(store)
	if err != nil {
		return err
	}
	opts := picker.Options{
		Prompt:       fmt.Sprintf("Links from %s: ", node.Title),
		RequireMatch: true,
		Filter:       func(c picker.Candidate) bool { return c.Node != nil && set[c.Node.ID] },
	}
	return selectNode(cmd.Context(), cands, opts)
}
