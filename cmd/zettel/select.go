package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"zettel/internal/graph"
	"zettel/internal/logging"
	"zettel/internal/notes"
	"zettel/internal/picker"

	"github.com/google/uuid"
)

// nodeCandidates builds the full labeled node list from the store.
func nodeCandidates(store *graph.Store) ([]picker.Candidate, error) {
	all, err := store.Nodes()
	if err != nil {
		return nil, err
	}
	cands := make([]picker.Candidate, len(all))
	for i := range all {
		n := all[i]
		cands[i] = picker.Candidate{Label: n.Title, Kind: picker.KindNode, Node: &n}
	}
	return cands, nil
}

// currentNode resolves the note the command operates on: the positional
// argument, else the configured default note. graph.ErrNoContext when the
// file is not part of the graph.
func currentNode(store *graph.Store, args []string) (*graph.Node, error) {
	path := cfg.DefaultNote
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, graph.ErrNoContext
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	node, err := store.NodeByFile(abs)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%s: %w", path, graph.ErrNoContext)
	}
	return node, nil
}

// selectNode runs a node prompt and acts on the result: opens the chosen
// note, or creates a new one when the user confirmed free text.
func selectNode(ctx context.Context, cands []picker.Candidate, opts picker.Options) error {
	sel, err := picker.SelectNode(ctx, cands, opts)
	if err != nil {
		return err
	}
	if sel.Created {
		path, err := createNote(sel.Title)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", path)
		return openInEditor(path, 0)
	}
	return openInEditor(sel.Candidate.File(), sel.Candidate.Pos())
}

// createNote writes a fresh note with generated identity into the notes dir.
func createNote(title string) (string, error) {
	name := slugify(title) + ".md"
	path := filepath.Join(cfg.NotesDir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("note %s already exists", path)
	}

	content := fmt.Sprintf("---\nid: %s\ntitle: %s\n---\n\n", uuid.NewString(), title)
	if err := os.MkdirAll(cfg.NotesDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	logging.Get(logging.CategoryCLI).Infof("created note %s", path)
	return path, nil
}

// slugify maps a title to a file name.
func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "untitled"
	}
	return string(out)
}

// openInEditor opens path in $EDITOR at the given byte offset's line.
// Without an editor configured it prints the path, which composes with
// shell pipelines.
func openInEditor(path string, pos int) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		fmt.Println(path)
		return nil
	}

	args := []string{path}
	if pos > 0 {
		if line := lineOfOffset(path, pos); line > 1 {
			args = []string{fmt.Sprintf("+%d", line), path}
		}
	}

	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// openAtLine opens a path (possibly relative to the notes dir) at a line.
func openAtLine(path string, line int) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.NotesDir, path)
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		fmt.Printf("%s:%d\n", path, line)
		return nil
	}
	cmd := exec.Command(editor, fmt.Sprintf("+%d", line), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// lineOfOffset converts a byte offset into a 1-based line number.
func lineOfOffset(path string, pos int) int {
	content, err := os.ReadFile(path)
	if err != nil {
		return 1
	}
	if pos > len(content) {
		pos = len(content)
	}
	line := 1
	for _, b := range content[:pos] {
		if b == '\n' {
			line++
		}
	}
	return line
}

// forwardTargets parses a note's body for id-typed link targets.
func forwardTargets(node *graph.Node) ([]string, error) {
	content, err := os.ReadFile(node.File)
	if err != nil {
		return nil, err
	}
	parsed, err := notes.Parse(node.File, content)
	if err != nil {
		return nil, err
	}
	var targets []string
	for _, l := range parsed.Links {
		if l.Type == "id" {
			targets = append(targets, l.DestID)
		}
	}
	return targets, nil
}
