package pool

import "sync"

// UnitBufferDefaultSize is the capacity, in UTF-16 units, of a fresh pooled unit slice.
const (
	UnitBufferDefaultSize  = 256
	UnitBufferMaxThreshold = 1024 * 64
)

var unitSlicePool = sync.Pool{
	New: func() any {
		s := make([]uint16, 0, UnitBufferDefaultSize)
		return &s
	},
}

// GetUnitSlice retrieves a UTF-16 unit slice of exactly size elements.
//
// The returned slice will have the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	units, cleanup := pool.GetUnitSlice(n)
//	defer cleanup()
func GetUnitSlice(size int) ([]uint16, func()) {
	ptr, _ := unitSlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		if cap(*ptr) > UnitBufferMaxThreshold {
			return
		}
		unitSlicePool.Put(ptr)
	}
}

// AmortizedUnitGrowth returns how many units a UTF-16 buffer of capacity
// curCap should grow by to fit required more units: a UnitBufferDefaultSize
// step while the buffer is small and 25% of the current capacity after
// that, never less than required.
func AmortizedUnitGrowth(curCap, required int) int {
	growBy := UnitBufferDefaultSize
	if curCap > 4*UnitBufferDefaultSize {
		growBy = curCap / 4
	}

	return max(growBy, required)
}
