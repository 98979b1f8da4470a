package notes

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LinkRef is a typed link construct found in a note body. Target is the part
// of the destination after the type prefix, e.g. "abc" for "id:abc".
type LinkRef struct {
	Type   string
	Target string
	Pos    int // byte offset within the body
}

var md = goldmark.New()

// ExtractLinks walks the markdown AST and returns every link whose
// destination carries a "type:target" scheme, in document order.
func ExtractLinks(body []byte) []LinkRef {
	reader := text.NewReader(body)
	doc := md.Parser().Parse(reader)

	var links []LinkRef
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest string
		switch v := n.(type) {
		case *ast.Link:
			dest = string(v.Destination)
		case *ast.AutoLink:
			dest = string(v.URL(body))
		default:
			return ast.WalkContinue, nil
		}

		typ, target, ok := splitDestination(dest)
		if !ok {
			return ast.WalkContinue, nil
		}
		links = append(links, LinkRef{Type: typ, Target: target, Pos: nodeOffset(n)})
		return ast.WalkContinue, nil
	})

	links = append(links, wikiLinks(body)...)
	sort.SliceStable(links, func(i, j int) bool { return links[i].Pos < links[j].Pos })
	return links
}

// wikiLinks finds [[target]] short links, which are plain text to the
// markdown parser. The short form always carries type "id".
func wikiLinks(body []byte) []LinkRef {
	var links []LinkRef
	for off := 0; ; {
		start := bytes.Index(body[off:], []byte("[["))
		if start < 0 {
			return links
		}
		start += off
		end := bytes.Index(body[start+2:], []byte("]]"))
		if end < 0 {
			return links
		}
		target := string(body[start+2 : start+2+end])
		if target != "" && !strings.ContainsAny(target, "[\n") {
			links = append(links, LinkRef{Type: "id", Target: target, Pos: start})
		}
		off = start + 2 + end + 2
	}
}

// ExtractTargets returns the targets of all links of the given type,
// preserving document order.
func ExtractTargets(body []byte, typ string) []string {
	var targets []string
	for _, l := range ExtractLinks(body) {
		if l.Type == typ {
			targets = append(targets, l.Target)
		}
	}
	return targets
}

// splitDestination splits "id:abc" into ("id", "abc"). The scheme of a web
// URL counts as its type, so "https://x" has type "https".
func splitDestination(dest string) (typ, target string, ok bool) {
	i := strings.Index(dest, ":")
	if i <= 0 || i == len(dest)-1 {
		return "", "", false
	}
	return dest[:i], strings.TrimPrefix(dest[i+1:], "//"), true
}

// nodeOffset approximates the byte offset of an inline node using the segment
// of its first text child. Zero when the node carries no text.
func nodeOffset(n ast.Node) int {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, okText := c.(*ast.Text); okText {
			return t.Segment.Start
		}
	}
	return 0
}
