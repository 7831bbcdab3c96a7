package pool_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/lestrrat-go/xmltok/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestByteSlice(t *testing.T) {
	bs := pool.ByteSlice()
	b := bs.Get()
	require.Empty(t, b)
	require.GreaterOrEqual(t, cap(b), 64)

	b = append(b, "<a/>"...)
	bs.Put(b)

	b = bs.Get()
	require.Empty(t, b, "slices come back empty")

	big := bs.GetCapacity(4096)
	require.Empty(t, big)
	require.GreaterOrEqual(t, cap(big), 4096)
	bs.Put(big)
	bs.Put(b)
}

func TestByteSliceConcurrent(t *testing.T) {
	const workers = 16
	const size = 257

	bs := pool.ByteSlice()
	results := make([][]byte, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := bs.GetCapacity(size)
			defer bs.Put(b)
			for range size {
				b = append(b, byte('a'+i))
			}
			results[i] = bytes.Clone(b)
		}()
	}
	wg.Wait()

	for i, b := range results {
		require.Equal(t, bytes.Repeat([]byte{byte('a' + i)}, size), b, "worker %d", i)
	}
}
