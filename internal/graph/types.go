// Package graph stores the note graph: nodes, bibliographic refs, and typed
// link edges, indexed in sqlite. Nodes are created by the notes scanner; this
// package only persists and queries them.
package graph

import "errors"

// Sentinel errors surfaced to the user by the graph commands.
var (
	// ErrNoContext is returned when an operation needs a current note and the
	// given file is not part of the graph.
	ErrNoContext = errors.New("not in a note")

	// ErrNoResults is returned when a link query matches nothing.
	ErrNoResults = errors.New("no results")
)

// Node is an addressable unit of content: a note, or a heading within one.
type Node struct {
	ID    string // opaque, globally unique within the graph
	Title string
	File  string // backing file path, absolute
	Pos   int    // byte offset where the node's content begins
}

// Ref is a bibliographic reference key attached to a node.
type Ref struct {
	Key    string
	NodeID string
}

// Link is a typed edge between two nodes. Graph queries filter on Type;
// only "id" links participate in backlink and forward-link lookups.
type Link struct {
	SourceID string
	DestID   string
	Type     string
	Pos      int // byte offset of the link in the source file
}

// FileInfo records scan state for one file so unchanged files can be skipped.
type FileInfo struct {
	Path    string
	ModTime int64
	Hash    string
}
