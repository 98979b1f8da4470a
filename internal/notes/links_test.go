package notes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractTargetsFiltersByType(t *testing.T) {
	// Two id links and one http link: only P and Q come back for type "id".
	body := []byte(`# Sample

See [first](id:P) and [second](id:Q), plus [the web](http://example.com).
`)

	got := ExtractTargets(body, "id")
	want := []string{"P", "Q"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractTargets mismatch (-want +got):\n%s", diff)
	}

	if http := ExtractTargets(body, "http"); len(http) != 1 {
		t.Errorf("expected 1 http target, got %v", http)
	}
}

func TestExtractLinksOrderAndPositions(t *testing.T) {
	body := []byte("[a](id:first) then [b](id:second)\n")

	links := ExtractLinks(body)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	if links[0].Target != "first" || links[1].Target != "second" {
		t.Errorf("document order not preserved: %v", links)
	}
	if !(links[0].Pos < links[1].Pos) {
		t.Errorf("positions not increasing: %d, %d", links[0].Pos, links[1].Pos)
	}
}

func TestExtractLinksWikiShortForm(t *testing.T) {
	body := []byte("See [[n7]] and later [explicit](id:n8).\n")

	links := ExtractLinks(body)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %v", links)
	}
	if links[0].Type != "id" || links[0].Target != "n7" {
		t.Errorf("wiki link not extracted: %+v", links[0])
	}
	if links[1].Target != "n8" {
		t.Errorf("document order broken: %+v", links[1])
	}

	if got := ExtractLinks([]byte("empty [[]] stays out\n")); len(got) != 0 {
		t.Errorf("empty wiki link should be ignored, got %v", got)
	}
}

func TestExtractLinksIgnoresBareText(t *testing.T) {
	body := []byte("no links here, just a colon: like that\n")
	if links := ExtractLinks(body); len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestSplitDestination(t *testing.T) {
	cases := []struct {
		dest        string
		typ, target string
		ok          bool
	}{
		{"id:abc", "id", "abc", true},
		{"https://example.com", "https", "example.com", true},
		{"relative/path.md", "", "", false},
		{"id:", "", "", false},
	}
	for _, tc := range cases {
		typ, target, ok := splitDestination(tc.dest)
		if ok != tc.ok || typ != tc.typ || target != tc.target {
			t.Errorf("splitDestination(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.dest, typ, target, ok, tc.typ, tc.target, tc.ok)
		}
	}
}
