package picker

import (
	"context"
	"strings"
	"testing"

	"zettel/internal/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeCandidates(titles ...string) []Candidate {
	cands := make([]Candidate, len(titles))
	for i, title := range titles {
		cands[i] = Candidate{
			Label: title,
			Kind:  KindNode,
			Node:  &graph.Node{ID: "id-" + title, Title: title, File: "/n/" + title + ".md"},
		}
	}
	return cands
}

func TestSelectByLabelIdentityRoundTrip(t *testing.T) {
	cands := nodeCandidates("alpha", "beta", "gamma")
	p := &LineProvider{In: strings.NewReader("beta\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{})
	require.NoError(t, err)
	assert.False(t, sel.Created)
	assert.Equal(t, "id-beta", sel.Candidate.Node.ID)
}

func TestSelectByNumber(t *testing.T) {
	cands := nodeCandidates("alpha", "beta", "gamma")
	p := &LineProvider{In: strings.NewReader("3\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{})
	require.NoError(t, err)
	assert.Equal(t, "gamma", sel.Candidate.Label)
}

func TestNoMatchReturnsPlaceholder(t *testing.T) {
	cands := nodeCandidates("alpha", "beta")
	p := &LineProvider{In: strings.NewReader("zzz new topic\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{})
	require.NoError(t, err)
	assert.True(t, sel.Created)
	assert.Equal(t, "zzz new topic", sel.Title)
}

func TestRequireMatchRejectsFreeText(t *testing.T) {
	cands := nodeCandidates("alpha", "beta")
	// Free text first; the session must refuse it and accept the second line.
	p := &LineProvider{In: strings.NewReader("zzz\nalpha\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{RequireMatch: true})
	require.NoError(t, err)
	assert.False(t, sel.Created)
	assert.Equal(t, "alpha", sel.Candidate.Label)
}

func TestRequireMatchNeverConfirmsWithoutCandidate(t *testing.T) {
	cands := nodeCandidates("alpha")
	// Only unmatched input, then EOF: the session ends cancelled, never with
	// a created value.
	p := &LineProvider{In: strings.NewReader("zzz\nqqq\n"), Out: &strings.Builder{}}

	_, err := p.SelectNode(context.Background(), cands, Options{RequireMatch: true})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestFuzzyNarrowingKeepsOrder(t *testing.T) {
	cands := nodeCandidates("project plan", "project log", "shopping")
	// "proj" matches two; "2" then selects the second of the narrowed list.
	p := &LineProvider{In: strings.NewReader("proj\n2\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{})
	require.NoError(t, err)
	assert.Equal(t, "project log", sel.Candidate.Label)
}

func TestInitialInputActsAsFirstLine(t *testing.T) {
	cands := nodeCandidates("alpha", "beta")
	p := &LineProvider{In: strings.NewReader(""), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{Initial: "alpha"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", sel.Candidate.Label)
}

func TestFilterSeesValueNotLabel(t *testing.T) {
	cands := nodeCandidates("alpha", "beta", "gamma")
	keep := map[string]bool{"id-beta": true}
	opts := Options{
		Filter: func(c Candidate) bool { return keep[c.Node.ID] },
	}
	p := &LineProvider{In: strings.NewReader("1\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, opts)
	require.NoError(t, err)
	assert.Equal(t, "beta", sel.Candidate.Label, "filtered list keeps only beta")
}

func TestEmptyInputConfirmsFirstVisible(t *testing.T) {
	cands := nodeCandidates("alpha", "beta")
	p := &LineProvider{In: strings.NewReader("\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, Options{})
	require.NoError(t, err)
	assert.Equal(t, "alpha", sel.Candidate.Label)
}

func TestLessControlsDisplayOrder(t *testing.T) {
	cands := nodeCandidates("beta", "alpha")
	opts := Options{
		Less: func(a, b Candidate) bool { return a.Label < b.Label },
	}
	p := &LineProvider{In: strings.NewReader("1\n"), Out: &strings.Builder{}}

	sel, err := p.SelectNode(context.Background(), cands, opts)
	require.NoError(t, err)
	assert.Equal(t, "alpha", sel.Candidate.Label, "comparator reorders display")
}

func TestSimilaritySortRanksCloserLabelsFirst(t *testing.T) {
	cands := nodeCandidates("zebra", "alphabeta", "alpha")
	opts := Options{Less: SimilaritySort("alpha")}

	visible := opts.Apply(cands)
	assert.Equal(t, "alpha", visible[0].Label)
}
