package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseHits(t *testing.T) {
	output := "inbox.md:3:call the plumber\nprojects/go.md:10:x := 1\nnot a hit\nbad:line:count skipped? no:\n"

	hits := ParseHits(output)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %v", len(hits), hits)
	}
	if hits[0].Path != "inbox.md" || hits[0].Line != 3 || hits[0].Text != "call the plumber" {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
	if hits[1].Path != "projects/go.md" || hits[1].Line != 10 {
		t.Errorf("unexpected second hit: %+v", hits[1])
	}
}

func TestParseHitsKeepsColonsInText(t *testing.T) {
	hits := ParseHits("a.md:1:key: value\n")
	if len(hits) != 1 || hits[0].Text != "key: value" {
		t.Fatalf("text with colons mangled: %+v", hits)
	}
}

func TestRunWithGrepCompatibleTool(t *testing.T) {
	// Use plain grep so the test does not depend on ripgrep being installed.
	dir := t.TempDir()
	content := "first line\nneedle here\nlast line\n"
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	g := &Grep{
		Command: "grep",
		Args:    []string{"-rn"},
		Dir:     dir,
		Timeout: 10 * time.Second,
	}

	hits, err := g.Run(context.Background(), "needle")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Line != 2 {
		t.Fatalf("expected one hit on line 2, got %v", hits)
	}

	// No matches is an empty result, not an error.
	hits, err = g.Run(context.Background(), "absent-term")
	if err != nil {
		t.Fatalf("Run with no matches failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
}
