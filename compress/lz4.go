package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/ustring/errs"
)

// lz4MaxExpansion is the largest ratio an LZ4 block can decompress to.
const lz4MaxExpansion = 255

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash
// table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor is the LZ4 block codec.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data as an LZ4 block.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: errs.ErrIncompressible when the block would not be smaller
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errs.ErrIncompressible
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block of unknown original size.
//
// The output buffer starts at 4x the input and doubles on
// lz4.ErrInvalidSourceShortBuffer, up to MaxDecompressedSize.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = MaxDecompressedSize

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressSized decompresses an LZ4 block into a buffer of exactly size
// bytes. A size beyond what len(data) can expand to is rejected with
// errs.ErrInvalidDataSection.
func (c LZ4Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if size < 0 || size > MaxDecompressedSize || size/lz4MaxExpansion > len(data) {
		return nil, fmt.Errorf("%w: %d compressed bytes cannot expand to %d", errs.ErrInvalidDataSection, len(data), size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}
