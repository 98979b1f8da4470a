package notes

import (
	"context"
	"testing"
	"time"

	"zettel/internal/graph"

	"go.uber.org/goleak"
)

func TestWatcherIndexesNewNotes(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	store, err := graph.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	sc := NewScanner(store, dir)
	w, err := NewWatcher(sc, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	writeNote(t, dir, "new.md", "---\nid: NEW\ntitle: New note\n---\ntext\n")

	deadline := time.After(3 * time.Second)
	for {
		n, err := store.NodeByID("NEW")
		if err != nil {
			t.Fatalf("NodeByID failed: %v", err)
		}
		if n != nil {
			if n.Title != "New note" {
				t.Errorf("unexpected title %q", n.Title)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never indexed the new note")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatcherIndexesTrailingWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	store, err := graph.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	sc := NewScanner(store, dir)
	w, err := NewWatcher(sc, dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.debounceDur = 100 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	// Two saves in quick succession: the second, content-bearing write must
	// win even though it lands inside the first write's debounce window.
	writeNote(t, dir, "draft.md", "---\nid: D\ntitle: Intermediate\n---\ntext\n")
	time.Sleep(50 * time.Millisecond)
	writeNote(t, dir, "draft.md", "---\nid: D\ntitle: Final Title\n---\ntext\n")

	deadline := time.After(3 * time.Second)
	for {
		n, err := store.NodeByID("D")
		if err != nil {
			t.Fatalf("NodeByID failed: %v", err)
		}
		if n != nil && n.Title == "Final Title" {
			return
		}
		select {
		case <-deadline:
			title := "<none>"
			if n != nil {
				title = n.Title
			}
			t.Fatalf("index stale after trailing write: title=%q", title)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	store, err := graph.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	w, err := NewWatcher(NewScanner(store, dir), dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	w.Stop()
	w.Stop() // second call must not panic or block
}
