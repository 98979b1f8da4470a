package main

import (
	"path/filepath"
	"testing"

	"zettel/internal/config"
	"zettel/internal/search"
)

func TestHitCandidatesResolveAgainstNotesDir(t *testing.T) {
	orig := cfg
	cfg = &config.Config{NotesDir: "/srv/notes"}
	t.Cleanup(func() { cfg = orig })

	hits := []search.Hit{
		{Path: "inbox.md", Line: 3, Text: "  call the plumber"},
		{Path: filepath.Join("/srv", "elsewhere", "a.md"), Line: 1, Text: "x"},
	}

	cands, byLabel := hitCandidates(hits)

	want := filepath.Join("/srv/notes", "inbox.md")
	if cands[0].Path != want {
		t.Errorf("relative hit not resolved: got %q, want %q", cands[0].Path, want)
	}
	if cands[0].File() != want {
		t.Errorf("preview file must be the resolved path, got %q", cands[0].File())
	}
	if cands[1].Path != hits[1].Path {
		t.Errorf("absolute hit must pass through, got %q", cands[1].Path)
	}

	// Labels keep the hit's own path so the original hit stays addressable.
	hit, ok := byLabel[cands[0].Label]
	if !ok || hit.Path != "inbox.md" || hit.Line != 3 {
		t.Errorf("label lookup broken: %+v", hit)
	}
}
