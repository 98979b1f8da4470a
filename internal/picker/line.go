package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// LineProvider is the baseline prompt: a numbered list on Out, one line of
// input from In. A number or an exact label confirms directly; anything else
// fuzzy-narrows the list. It is the registry default; the TUI picker
// overrides it when fuzzy mode is on.
type LineProvider struct {
	In  io.Reader
	Out io.Writer
}

func (p *LineProvider) SelectNode(ctx context.Context, cands []Candidate, opts Options) (Selection, error) {
	return p.run(ctx, cands, opts)
}

func (p *LineProvider) SelectRef(ctx context.Context, cands []Candidate, opts Options) (Selection, error) {
	return p.run(ctx, cands, opts)
}

func (p *LineProvider) run(ctx context.Context, cands []Candidate, opts Options) (Selection, error) {
	visible := opts.Apply(cands)
	scanner := bufio.NewScanner(p.In)

	// Initial input behaves exactly like a first typed line.
	pending := opts.Initial
	hasPending := opts.Initial != ""

	for {
		select {
		case <-ctx.Done():
			return Selection{}, ctx.Err()
		default:
		}

		var input string
		if hasPending {
			input = pending
			hasPending = false
		} else {
			p.render(visible, opts)
			if !scanner.Scan() {
				return Selection{}, ErrCancelled
			}
			input = strings.TrimSpace(scanner.Text())
		}

		if input == "" {
			if len(visible) > 0 {
				return Selection{Candidate: visible[0]}, nil
			}
			if opts.RequireMatch {
				continue
			}
			return Selection{}, ErrCancelled
		}

		// Number selects by position.
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(visible) {
			return Selection{Candidate: visible[n-1]}, nil
		}

		// Exact label wins outright.
		for _, c := range visible {
			if c.Label == input {
				return Selection{Candidate: c}, nil
			}
		}

		labels := make([]string, len(visible))
		for i, c := range visible {
			labels[i] = c.Label
		}
		matches := fuzzy.Find(input, labels)

		switch {
		case len(matches) == 1:
			return Selection{Candidate: visible[matches[0].Index]}, nil
		case len(matches) > 1:
			// Narrow to the matches, keeping the session's order.
			narrowed := make([]Candidate, 0, len(matches))
			for _, c := range visible {
				for _, m := range matches {
					if labels[m.Index] == c.Label {
						narrowed = append(narrowed, c)
						break
					}
				}
			}
			visible = narrowed
		default:
			if opts.RequireMatch {
				fmt.Fprintf(p.Out, "no match for %q\n", input)
				continue
			}
			return Selection{Created: true, Title: input}, nil
		}
	}
}

func (p *LineProvider) render(visible []Candidate, opts Options) {
	fmt.Fprintln(p.Out, opts.prompt())
	for i, c := range visible {
		fmt.Fprintf(p.Out, "%3d. %s\n", i+1, c.Label)
	}
	fmt.Fprint(p.Out, "> ")
}
