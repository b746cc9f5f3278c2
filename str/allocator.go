package str

import "github.com/arloliu/ustring/internal/pool"

// Allocator supplies the UTF-16 buffers a MutableString grows into.
type Allocator interface {
	// Allocate returns an empty buffer with capacity of at least n units
	// and a function that hands it back once it is no longer used.
	Allocate(n int) ([]uint16, func())
}

// HeapAllocator allocates buffers with make and lets the garbage collector
// reclaim them.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(n int) ([]uint16, func()) {
	return make([]uint16, 0, n), func() {}
}

// PooledAllocator recycles buffers through a sync.Pool. It suits short-lived
// mutable strings such as formatting scratch space. A pooled buffer may be
// larger than requested.
type PooledAllocator struct{}

func (PooledAllocator) Allocate(n int) ([]uint16, func()) {
	buf, put := pool.GetUnitSlice(n)

	return buf[:0], put
}
