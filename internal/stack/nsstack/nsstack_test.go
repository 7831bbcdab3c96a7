package nsstack_test

import (
	"testing"

	"github.com/lestrrat-go/xmltok/internal/stack"
	"github.com/lestrrat-go/xmltok/internal/stack/nsstack"
	"github.com/stretchr/testify/assert"
)

func TestNsStack(t *testing.T) {
	s := nsstack.New()
	s.Enter()
	if !assert.NoError(t, s.Push("xml", "http://www.w3.org/XML/1998/namespace"), "push xml") {
		return
	}
	if !assert.NoError(t, s.Push("ds", "http://www.w3.org/2000/09/xmldsig#"), "push ds") {
		return
	}
	if !assert.ErrorIs(t, s.Push("ds", "urn:other"), stack.ErrDuplicateItem, "duplicate in the same scope") {
		return
	}

	if !assert.Equal(t, 2, s.Len(), "Len == 2") {
		return
	}

	item, ok := s.Lookup("ds")
	if !assert.True(t, ok, `Lookup("ds") succeeds`) {
		return
	}
	if !assert.Equal(t, "http://www.w3.org/2000/09/xmldsig#", item, `Lookup("ds") value`) {
		return
	}

	s.Enter()
	if !assert.NoError(t, s.Push("ds", "urn:other"), "shadowing in a child scope") {
		return
	}
	item, _ = s.Lookup("ds")
	if !assert.Equal(t, "urn:other", item, "inner binding wins") {
		return
	}
	s.Leave()

	item, _ = s.Lookup("ds")
	if !assert.Equal(t, "http://www.w3.org/2000/09/xmldsig#", item, "outer binding restored") {
		return
	}

	s.Leave()
	if !assert.Equal(t, 0, s.Len(), "Len == 0") {
		return
	}
	_, ok = s.Lookup("ds")
	assert.False(t, ok, `Lookup("ds") fails`)
}
