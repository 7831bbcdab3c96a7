package stack

import "github.com/pkg/errors"

var ErrDuplicateItem = errors.New("item already exists")

type LookupItem interface {
	Key() string
}

// Unique is a LIFO of keyed items where a key may be shadowed by a later
// push, but only if the items are separated by a Mark.
type Unique[T LookupItem] struct {
	items Simple[T]
	marks Simple[int]
}

// Mark starts a new scope. Keys pushed after Mark may shadow keys pushed
// before it.
func (s *Unique[T]) Mark() {
	s.marks.Push(s.items.Len())
}

// Unmark drops every item pushed since the last Mark
func (s *Unique[T]) Unmark() {
	m, ok := s.marks.Take()
	if !ok {
		return
	}
	s.items.Pop(s.items.Len() - m)
}

// Push adds i to the current scope. It fails with ErrDuplicateItem if the
// current scope already has an item with the same key.
func (s *Unique[T]) Push(i T) error {
	floor := 0
	if m, ok := s.marks.Top(); ok {
		floor = m
	}
	key := i.Key()
	for j := s.items.Len() - 1; j >= floor; j-- {
		if s.items[j].Key() == key {
			return ErrDuplicateItem
		}
	}
	s.items.Push(i)
	return nil
}

// Lookup returns the innermost item with the given key
func (s *Unique[T]) Lookup(key string) (T, bool) {
	for j := s.items.Len() - 1; j >= 0; j-- {
		if s.items[j].Key() == key {
			return s.items[j], true
		}
	}
	var zero T
	return zero, false
}

func (s *Unique[T]) Len() int {
	return s.items.Len()
}

// Depth returns the number of open scopes
func (s *Unique[T]) Depth() int {
	return s.marks.Len()
}
