package notes

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"zettel/internal/graph"
	"zettel/internal/logging"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// Scanner populates the graph store from a notes directory.
type Scanner struct {
	store *graph.Store
	dir   string
}

// NewScanner creates a scanner rooted at dir.
func NewScanner(store *graph.Store, dir string) *Scanner {
	return &Scanner{store: store, dir: dir}
}

// Scan walks the notes directory and indexes every markdown file. Unchanged
// files (same mtime and content hash) are skipped.
func (sc *Scanner) Scan(ctx context.Context) (int, error) {
	log := logging.Get(logging.CategoryScan)

	matches, err := doublestar.Glob(os.DirFS(sc.dir), "**/*.md")
	if err != nil {
		return 0, fmt.Errorf("failed to glob notes dir: %w", err)
	}

	indexed := 0
	for _, rel := range matches {
		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		path := filepath.Join(sc.dir, rel)
		changed, err := sc.ScanFile(path)
		if err != nil {
			log.Warnf("skipping %s: %v", path, err)
			continue
		}
		if changed {
			indexed++
		}
	}

	log.Infof("scan of %s complete: %d/%d files indexed", sc.dir, indexed, len(matches))
	return indexed, nil
}

// ScanFile indexes a single note. Returns false when the file was unchanged.
func (sc *Scanner) ScanFile(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	sum := sha256.Sum256(content)
	fi := graph.FileInfo{
		Path:    path,
		ModTime: info.ModTime().Unix(),
		Hash:    hex.EncodeToString(sum[:]),
	}
	if sc.store.FileUnchanged(fi) {
		return false, nil
	}

	note, err := Parse(path, content)
	if err != nil {
		return false, err
	}

	if err := sc.store.UpsertNode(note.Node); err != nil {
		return false, err
	}
	for _, key := range note.Refs {
		if err := sc.store.UpsertRef(graph.Ref{Key: key, NodeID: note.Node.ID}); err != nil {
			return false, err
		}
	}
	if err := sc.store.ReplaceLinks(note.Node.ID, note.Links); err != nil {
		return false, err
	}
	if err := sc.store.UpsertFile(fi); err != nil {
		return false, err
	}
	return true, nil
}

// Note is a parsed markdown note ready for indexing.
type Note struct {
	Node  graph.Node
	Refs  []string
	Links []graph.Link
}

// Parse builds a Note from raw file content. Identity comes from front
// matter; a note without an id gets a generated one, a note without a title
// falls back to its first heading, then to the file name.
func Parse(path string, content []byte) (*Note, error) {
	fm, body, bodyOffset := splitFrontMatter(content)
	meta, err := parseFrontMatter(fm)
	if err != nil {
		return nil, err
	}

	id := meta.ID
	if id == "" {
		id = uuid.NewString()
	}
	title := meta.Title
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = filepath.Base(path)
	}

	node := graph.Node{ID: id, Title: title, File: path, Pos: bodyOffset}

	var links []graph.Link
	for _, l := range ExtractLinks(body) {
		links = append(links, graph.Link{
			SourceID: id,
			DestID:   l.Target,
			Type:     l.Type,
			Pos:      bodyOffset + l.Pos,
		})
	}

	return &Note{Node: node, Refs: meta.Refs, Links: links}, nil
}
