package main

import (
	"fmt"
	"strings"

	"zettel/internal/graph"
	"zettel/internal/picker"

	"github.com/spf13/cobra"
)

// noteCmd is the plain node selector: pick any note, or create one.
var noteCmd = &cobra.Command{
	Use:   "note [initial input]",
	Short: "Select a note by title, creating it if it does not exist",
	Long: `Opens the selector over every indexed note. Confirming free text that
matches no note creates a new note with that title, generated id front
matter and opens it.`,
	RunE: runNote,
}

func runNote(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cands, err := nodeCandidates(store)
	if err != nil {
		return err
	}
	return selectNode(cmd.Context(), cands, picker.Options{
		Initial: strings.Join(args, " "),
	})
}

// refCmd selects among citation keys and opens the owning note.
var refCmd = &cobra.Command{
	Use:   "ref [initial input]",
	Short: "Select a note by citation key",
	Long: `Opens the selector over every citation key declared in note front
matter and opens the note that owns the chosen key.`,
	RunE: runRef,
}

func runRef(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	refs, err := store.Refs()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("no citation keys indexed: %w", graph.ErrNoResults)
	}

	cands := make([]picker.Candidate, len(refs))
	for i := range refs {
		r := refs[i]
		// The owning node rides along so the picker can preview its file.
		node, err := store.NodeByID(r.NodeID)
		if err != nil {
			return err
		}
		cands[i] = picker.Candidate{Label: r.Key, Kind: picker.KindRef, Ref: &r, Node: node}
	}

	sel, err := picker.SelectRef(cmd.Context(), cands, picker.Options{
		Prompt:       "Ref: ",
		Initial:      strings.Join(args, " "),
		RequireMatch: true,
	})
	if err != nil {
		return err
	}

	if sel.Candidate.Node == nil {
		return fmt.Errorf("ref %s points at unknown note %s", sel.Candidate.Label, sel.Candidate.Ref.NodeID)
	}
	return openInEditor(sel.Candidate.File(), sel.Candidate.Pos())
}
