package notes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zettel/internal/graph"

	"github.com/google/go-cmp/cmp"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write note: %v", err)
	}
	return path
}

func TestParseFrontMatterIdentity(t *testing.T) {
	content := "---\nid: n42\ntitle: Networking\nrefs:\n  - tanenbaum1996\n---\nBody with [peer](id:n7).\n"

	note, err := Parse("/notes/net.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if note.Node.ID != "n42" || note.Node.Title != "Networking" {
		t.Errorf("unexpected node identity: %+v", note.Node)
	}
	if diff := cmp.Diff([]string{"tanenbaum1996"}, note.Refs); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
	if len(note.Links) != 1 || note.Links[0].DestID != "n7" || note.Links[0].Type != "id" {
		t.Errorf("unexpected links: %v", note.Links)
	}
	if note.Links[0].Pos <= note.Node.Pos {
		t.Errorf("link position %d should land after front matter at %d",
			note.Links[0].Pos, note.Node.Pos)
	}
}

func TestParseFallbacks(t *testing.T) {
	note, err := Parse("/notes/untitled.md", []byte("# First Heading\n\ntext\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if note.Node.Title != "First Heading" {
		t.Errorf("expected heading fallback title, got %q", note.Node.Title)
	}
	if note.Node.ID == "" {
		t.Error("expected generated id for note without front matter")
	}

	bare, err := Parse("/notes/bare.md", []byte("just text\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if bare.Node.Title != "bare.md" {
		t.Errorf("expected file name fallback title, got %q", bare.Node.Title)
	}
}

func TestScanIndexesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "---\nid: A\ntitle: Alpha\n---\n[to b](id:B)\n")
	writeNote(t, dir, "b.md", "---\nid: B\ntitle: Beta\n---\ntext\n")
	writeNote(t, dir, "notes.txt", "not markdown\n")

	store, err := graph.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	sc := NewScanner(store, dir)
	indexed, err := sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if indexed != 2 {
		t.Errorf("expected 2 files indexed, got %d", indexed)
	}

	sources, err := store.BacklinkSources("B", "id")
	if err != nil {
		t.Fatalf("BacklinkSources failed: %v", err)
	}
	if diff := cmp.Diff([]string{"A"}, sources); diff != "" {
		t.Errorf("backlinks mismatch (-want +got):\n%s", diff)
	}

	// Second scan over unchanged files indexes nothing.
	indexed, err = sc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	if indexed != 0 {
		t.Errorf("expected unchanged files to be skipped, indexed %d", indexed)
	}
}

func TestScanPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "a.md", "---\nid: A\ntitle: Alpha\n---\nno links\n")

	store, err := graph.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	sc := NewScanner(store, dir)
	if _, err := sc.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	writeNote(t, dir, "a.md", "---\nid: A\ntitle: Alpha\n---\nnow [linked](id:B)\n")
	if _, err := sc.ScanFile(path); err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}

	links, err := store.LinksFrom("A", "id")
	if err != nil {
		t.Fatalf("LinksFrom failed: %v", err)
	}
	if len(links) != 1 || links[0].DestID != "B" {
		t.Errorf("expected edited link to B, got %v", links)
	}
}
