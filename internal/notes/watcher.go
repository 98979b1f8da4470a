package notes

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"zettel/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher reindexes notes as they change on disk. Events are queued per file
// and flushed once a file has settled past the debounce window, so the last
// write of a rapid save sequence always lands in the index.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	scanner     *Scanner
	dir         string
	pending     map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

// NewWatcher creates a watcher over the scanner's notes directory.
func NewWatcher(scanner *Scanner, dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fsw,
		scanner:     scanner,
		dir:         dir,
		pending:     make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; Stop (or ctx cancellation) ends it.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Get(logging.CategoryScan).Infof("watching %s", w.dir)

	go w.loop(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	log := logging.Get(logging.CategoryScan)

	flushTicker := time.NewTicker(100 * time.Millisecond)
	defer flushTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)
		case <-flushTicker.C:
			w.flushPending()
		}
	}
}

// handleEvent queues a filesystem event for debounced processing. Every
// event refreshes the file's settle deadline; nothing is dropped.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".md") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flushPending reindexes files whose last event has settled past the
// debounce window. A file that no longer exists is dropped from the index.
func (w *Watcher) flushPending() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	log := logging.Get(logging.CategoryScan)
	for _, path := range settled {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := w.scanner.store.DeleteFile(path); err != nil {
				log.Warnf("failed to drop %s from index: %v", path, err)
			}
			continue
		}
		if _, err := w.scanner.ScanFile(path); err != nil {
			log.Warnf("failed to rescan %s: %v", path, err)
		}
	}
}
