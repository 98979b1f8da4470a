// Package search runs the configured external text search over the notes
// directory. The default backend is ripgrep; anything emitting
// "path:line:text" lines works.
package search

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"zettel/internal/logging"
)

// Hit is one search result line.
type Hit struct {
	Path string
	Line int
	Text string
}

// Grep invokes an external search binary scoped to a directory.
type Grep struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// NewRipgrep returns the default ripgrep-backed live grep for dir.
func NewRipgrep(dir string) *Grep {
	return &Grep{
		Command: "rg",
		Args:    []string{"--line-number", "--no-heading", "--color", "never"},
		Dir:     dir,
		Timeout: 30 * time.Second,
	}
}

// Run executes the search with the given query and parses the hits.
// An empty result is not an error; a missing binary is.
func (g *Grep) Run(ctx context.Context, query string) ([]Hit, error) {
	timeout := g.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, g.Args...), query)
	cmd := exec.CommandContext(ctx, g.Command, args...)
	cmd.Dir = g.Dir

	logging.Get(logging.CategorySearch).Debugf("running %s %v in %s", g.Command, args, g.Dir)

	output, err := cmd.Output()
	if err != nil {
		// grep-family tools exit 1 on "no matches"; that is an empty result.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("search command failed: %w", err)
	}

	return ParseHits(string(output)), nil
}

// ParseHits parses "path:line:text" output lines. Lines that do not fit the
// shape are skipped.
func ParseHits(output string) []Hit {
	var hits []Hit
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) != 3 {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		hits = append(hits, Hit{Path: parts[0], Line: n, Text: parts[2]})
	}
	return hits
}
