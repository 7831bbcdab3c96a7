// Package pool recycles byte slices used as read buffers.
package pool

import "sync"

const defaultCapacity = 64

type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlicePool = &ByteSlicePool{
	pool: sync.Pool{
		New: func() any {
			b := make([]byte, 0, defaultCapacity)
			return &b
		},
	},
}

// ByteSlice returns the shared pool
func ByteSlice() *ByteSlicePool {
	return byteSlicePool
}

// Get returns an empty slice with at least the default capacity
func (p *ByteSlicePool) Get() []byte {
	return p.GetCapacity(defaultCapacity)
}

// GetCapacity returns an empty slice with at least n bytes of capacity
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	b := *(p.pool.Get().(*[]byte))
	if cap(b) < n {
		p.Put(b)
		return make([]byte, 0, n)
	}
	return b[:0]
}

// Put hands b back. The caller must not use b afterwards.
func (p *ByteSlicePool) Put(b []byte) {
	b = b[:0]
	p.pool.Put(&b)
}
