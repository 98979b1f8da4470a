// Package picker implements candidate selection prompts: the candidate
// model, the provider registry that backs the override switch, and the
// preview session resource tracking.
package picker

import (
	"context"
	"errors"
	"sort"
	"strings"

	"zettel/internal/graph"

	"github.com/hbollon/go-edlib"
)

// ErrCancelled is returned when the user aborts a prompt session.
var ErrCancelled = errors.New("selection cancelled")

// Kind discriminates what a candidate wraps.
type Kind int

const (
	KindNode Kind = iota
	KindRef
	KindFile
)

// Candidate is one labeled entry in a prompt session. Node, Ref or Path is
// meaningful per Kind; a KindRef candidate may also carry the owning Node
// so its file can be previewed.
type Candidate struct {
	Label string
	Kind  Kind
	Node  *graph.Node
	Ref   *graph.Ref
	Path  string
}

// File returns the backing file path for preview purposes, or "".
func (c Candidate) File() string {
	switch c.Kind {
	case KindNode, KindRef:
		if c.Node != nil {
			return c.Node.File
		}
	case KindFile:
		return c.Path
	}
	return ""
}

// Pos returns the content offset to scroll a preview to.
func (c Candidate) Pos() int {
	if c.Node != nil {
		return c.Node.Pos
	}
	return 0
}

// Selection is the tagged result of a prompt session. When Created is true
// the user confirmed free text matching no candidate; Title carries that
// text and Candidate is zero. Otherwise Candidate is the chosen entry.
type Selection struct {
	Candidate Candidate
	Created   bool
	Title     string
}

// Options tunes one prompt session. The zero value means: prompt "Note: ",
// no initial input, no filter, no reordering, match not required.
type Options struct {
	// Prompt is the session title shown to the user.
	Prompt string
	// Initial pre-seeds the session's input.
	Initial string
	// RequireMatch forbids confirming free text; the session cannot end
	// without a real candidate (or a cancel).
	RequireMatch bool
	// Filter receives the candidate value; false removes it from
	// consideration. It does not influence display order.
	Filter func(Candidate) bool
	// Less orders the displayed candidates. Nil keeps the given order.
	Less func(a, b Candidate) bool
}

// prompt returns the effective session title.
func (o Options) prompt() string {
	if o.Prompt == "" {
		return "Note: "
	}
	return o.Prompt
}

// Apply filters then orders the candidates per the options. Filtering never
// affects order; order is controlled solely by Less.
func (o Options) Apply(cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if o.Filter != nil && !o.Filter(c) {
			continue
		}
		out = append(out, c)
	}
	if o.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return o.Less(out[i], out[j]) })
	}
	return out
}

// SimilaritySort returns a comparator placing labels most similar to query
// first. Useful as Options.Less when a session is seeded with initial input.
func SimilaritySort(query string) func(a, b Candidate) bool {
	q := strings.ToLower(query)
	score := func(label string) float32 {
		s, err := edlib.StringsSimilarity(q, strings.ToLower(label), edlib.Levenshtein)
		if err != nil {
			return 0
		}
		return s
	}
	return func(a, b Candidate) bool {
		return score(a.Label) > score(b.Label)
	}
}

// PromptProvider is the capability interface behind every selection prompt.
// The registry in this package decides which implementation call sites get.
type PromptProvider interface {
	// SelectNode runs a prompt session over note candidates.
	SelectNode(ctx context.Context, cands []Candidate, opts Options) (Selection, error)
	// SelectRef runs a prompt session over reference candidates.
	SelectRef(ctx context.Context, cands []Candidate, opts Options) (Selection, error)
}
