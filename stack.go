package xmltok

import "github.com/lestrrat-go/xmltok/internal/stack"

// tagStack records the names of the start tags that are still open. The
// names are copied into one arena because the input window they came from
// may be gone by the time the matching end tag arrives.
type tagStack struct {
	arena  []byte
	starts stack.Simple[int]
}

func (s *tagStack) Push(name []byte) {
	s.starts.Push(len(s.arena))
	s.arena = append(s.arena, name...)
}

// Pop removes the innermost name and returns it. The returned slice is
// only valid until the next Push.
func (s *tagStack) Pop() ([]byte, bool) {
	start, ok := s.starts.Take()
	if !ok {
		return nil, false
	}
	name := s.arena[start:]
	s.arena = s.arena[:start]
	return name, true
}

func (s *tagStack) Top() ([]byte, bool) {
	start, ok := s.starts.Top()
	if !ok {
		return nil, false
	}
	return s.arena[start:], true
}

func (s *tagStack) Len() int {
	return s.starts.Len()
}
