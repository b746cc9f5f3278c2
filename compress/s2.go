package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/ustring/errs"
)

// S2Compressor compresses string table data sections as S2 blocks. It
// trades ratio for speed, which suits tables decoded on every load.
type S2Compressor struct{}

var (
	_ Codec             = (*S2Compressor)(nil)
	_ SizedDecompressor = (*S2Compressor)(nil)
)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses a data section as one S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// DecompressSized checks the length stored in the block against size
// before allocating the output.
func (c S2Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: block holds %d bytes, expected %d", errs.ErrInvalidDataSection, n, size)
	}

	return s2.Decode(make([]byte, size), data)
}
