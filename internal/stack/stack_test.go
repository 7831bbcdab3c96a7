package stack_test

import (
	"testing"

	"github.com/lestrrat-go/xmltok/internal/stack"
	"github.com/stretchr/testify/require"
)

func TestSimple(t *testing.T) {
	var s stack.Simple[int]
	_, ok := s.Top()
	require.False(t, ok, "Top on an empty stack fails")

	for i := range 30 {
		s.Push(i)
	}
	require.Equal(t, 30, s.Len())
	v, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, 29, v)
	require.Equal(t, 30, s.Len(), "Top leaves the item in place")

	v, ok = s.Take()
	require.True(t, ok)
	require.Equal(t, 29, v)

	s.Pop(20)
	require.Equal(t, 9, s.Len())
	v, ok = s.Top()
	require.True(t, ok)
	require.Equal(t, 8, v)

	s.Pop(100)
	require.Equal(t, 0, s.Len())
	_, ok = s.Take()
	require.False(t, ok, "Take on an empty stack fails")
}

type item struct {
	key   string
	value string
}

func (i item) Key() string { return i.key }

func TestUnique(t *testing.T) {
	var s stack.Unique[item]
	require.NoError(t, s.Push(item{"a", "1"}))
	require.ErrorIs(t, s.Push(item{"a", "2"}), stack.ErrDuplicateItem, "same scope cannot repeat a key")

	s.Mark()
	require.NoError(t, s.Push(item{"a", "2"}), "inner scope may shadow")
	v, ok := s.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "2", v.value)
	require.Equal(t, 1, s.Depth())

	s.Unmark()
	v, ok = s.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "1", v.value)
	require.Equal(t, 1, s.Len())

	_, ok = s.Lookup("b")
	require.False(t, ok)

	s.Unmark()
	require.Equal(t, 1, s.Len(), "Unmark without a scope is a no-op")
}
