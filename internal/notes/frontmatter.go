// Package notes scans a directory of markdown notes and feeds the graph
// store: front matter supplies node identity, the markdown body supplies
// typed links.
package notes

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fmDelim = []byte("---\n")

// frontMatter is the recognized subset of note metadata.
type frontMatter struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Refs  []string `yaml:"refs"`
}

// splitFrontMatter separates a leading YAML front-matter block from the body.
// bodyOffset is the byte offset of the body within the original content, so
// link positions stay addressable in the file.
func splitFrontMatter(content []byte) (fm, body []byte, bodyOffset int) {
	if !bytes.HasPrefix(content, fmDelim) {
		return nil, content, 0
	}
	rest := content[len(fmDelim):]
	end := bytes.Index(rest, fmDelim)
	if end < 0 {
		return nil, content, 0
	}
	fm = rest[:end]
	bodyOffset = len(fmDelim) + end + len(fmDelim)
	return fm, content[bodyOffset:], bodyOffset
}

// parseFrontMatter decodes the YAML block. A missing block yields zero values.
func parseFrontMatter(fm []byte) (frontMatter, error) {
	var meta frontMatter
	if len(fm) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return meta, nil
}

// firstHeading returns the text of the first ATX heading in the body, or "".
func firstHeading(body []byte) string {
	for _, line := range bytes.Split(body, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if bytes.HasPrefix(trimmed, []byte("#")) {
			return string(bytes.TrimSpace(bytes.TrimLeft(trimmed, "#")))
		}
	}
	return ""
}
