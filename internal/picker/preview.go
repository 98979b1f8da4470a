package picker

import (
	"bytes"
	"os"
	"sync"

	"zettel/internal/logging"
)

// Session tracks preview resources for one prompt session. At most one
// preview is open at a time: opening the next candidate closes the previous
// one, and End closes whatever is open regardless of how the session ends.
// Open and close counts stay in parity on every exit path.
type Session struct {
	mu      sync.Mutex
	current *Preview
	opened  int
	closed  int
}

// Preview is a scoped handle on a candidate's backing file.
type Preview struct {
	Path    string
	Content []byte
	Line    int // line derived from the candidate's byte offset

	file    *os.File
	once    sync.Once
	session *Session
}

// NewSession creates an empty preview session.
func NewSession() *Session {
	return &Session{}
}

// Open loads the candidate's backing file for preview, closing the previous
// preview first. pos is a byte offset into the file.
func (s *Session) Open(path string, pos int) (*Preview, error) {
	s.mu.Lock()
	prev := s.current
	s.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		f.Close()
		return nil, err
	}

	p := &Preview{
		Path:    path,
		Content: content,
		Line:    lineAt(content, pos),
		file:    f,
		session: s,
	}

	s.mu.Lock()
	s.current = p
	s.opened++
	s.mu.Unlock()

	logging.Get(logging.CategoryPicker).Debugf("preview open: %s", path)
	return p, nil
}

// Close releases the preview's file handle. Idempotent.
func (p *Preview) Close() {
	p.once.Do(func() {
		_ = p.file.Close()
		p.session.mu.Lock()
		p.session.closed++
		if p.session.current == p {
			p.session.current = nil
		}
		p.session.mu.Unlock()
	})
}

// End closes any open preview. Called on confirm and on cancel.
func (s *Session) End() {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur != nil {
		cur.Close()
	}
}

// Balanced reports open/close parity; true whenever no preview is live.
func (s *Session) Balanced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened == s.closed
}

// Counts returns how many previews were opened and closed.
func (s *Session) Counts() (opened, closed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(content []byte, pos int) int {
	if pos <= 0 {
		return 1
	}
	if pos > len(content) {
		pos = len(content)
	}
	return bytes.Count(content[:pos], []byte("\n")) + 1
}
