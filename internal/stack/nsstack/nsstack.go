// Package nsstack keeps the prefix to namespace URI bindings that are in
// scope for the element being tokenized.
package nsstack

import "github.com/lestrrat-go/xmltok/internal/stack"

type Item struct {
	prefix string
	href   string
}

func (i Item) Prefix() string {
	return i.prefix
}

func (i Item) URI() string {
	return i.href
}

func (i Item) Key() string {
	return i.prefix
}

type Stack struct {
	stack.Unique[Item]
}

func New() Stack {
	return Stack{}
}

// Push binds prefix to uri in the current element scope. The empty prefix
// is the default namespace.
func (s *Stack) Push(prefix, uri string) error {
	return s.Unique.Push(Item{prefix: prefix, href: uri})
}

// Enter opens the scope of a new element
func (s *Stack) Enter() {
	s.Unique.Mark()
}

// Leave drops the bindings of the innermost element
func (s *Stack) Leave() {
	s.Unique.Unmark()
}

// Lookup returns the URI bound to prefix, and whether a binding exists
func (s *Stack) Lookup(prefix string) (string, bool) {
	item, ok := s.Unique.Lookup(prefix)
	if !ok {
		return "", false
	}
	return item.href, true
}
