package pool

import "sync"

// Default sizes of pooled buffers.
const (
	ByteBufferDefaultSize      = 1024 * 4        // 4KiB, transcoding scratch
	ByteBufferMaxThreshold     = 1024 * 64       // 64KiB
	TableBufferDefaultSize     = 1024 * 16       // 16KiB, string table payloads
	TableBufferMaxThreshold    = 1024 * 1024 * 4 // 4MiB
	byteBufferLargeGrowthLimit = 4 * TableBufferDefaultSize
)

// ByteBuffer is a growable byte slice with an amortized growth strategy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary, and
// returns the newly exposed tail.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Truncate shrinks the length of the buffer to n.
// Panics if n is negative or greater than the current length.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// The growth strategy is as follows:
//   - For small buffers, grow by TableBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := AmortizedGrowth(cap(bb.B), requiredBytes)
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// AmortizedGrowth returns how many elements a buffer of capacity curCap should
// grow by to fit required more elements: a fixed step for small buffers and
// 25% of the current capacity for large ones, never less than required.
func AmortizedGrowth(curCap, required int) int {
	growBy := TableBufferDefaultSize
	if curCap > byteBufferLargeGrowthLimit {
		growBy = curCap / 4
	}
	if growBy < required {
		growBy = required
	}

	return growBy
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers larger than maxThreshold are dropped instead of being pooled so a
// single huge conversion does not pin memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	byteDefaultPool  = NewByteBufferPool(ByteBufferDefaultSize, ByteBufferMaxThreshold)
	tableDefaultPool = NewByteBufferPool(TableBufferDefaultSize, TableBufferMaxThreshold)
)

// GetByteBuffer retrieves a scratch ByteBuffer from the default pool.
func GetByteBuffer() *ByteBuffer {
	return byteDefaultPool.Get()
}

// PutByteBuffer returns a scratch ByteBuffer to the default pool.
func PutByteBuffer(bb *ByteBuffer) {
	byteDefaultPool.Put(bb)
}

// GetTableBuffer retrieves a ByteBuffer sized for string table payloads.
func GetTableBuffer() *ByteBuffer {
	return tableDefaultPool.Get()
}

// PutTableBuffer returns a string table ByteBuffer to its pool.
func PutTableBuffer(bb *ByteBuffer) {
	tableDefaultPool.Put(bb)
}
