// Package orderedmap is a map that remembers insertion order. The first
// value stored under a key stays; later ones are rejected.
package orderedmap

import (
	"iter"

	"github.com/pkg/errors"
)

var ErrDuplicateEntry = errors.New("duplicate entry")

type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		values: make(map[K]V),
	}
}

// Set stores value under key, unless key is already present
func (m *Map[K, V]) Set(key K, value V) error {
	if _, exists := m.values[key]; exists {
		return ErrDuplicateEntry
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return nil
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Update replaces the value of an existing key, keeping its position
func (m *Map[K, V]) Update(key K, fn func(V) V) bool {
	v, ok := m.values[key]
	if !ok {
		return false
	}
	m.values[key] = fn(v)
	return true
}

func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Range iterates in insertion order
func (m *Map[K, V]) Range() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				break
			}
		}
	}
}
