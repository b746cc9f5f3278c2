//go:build cgo && gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// zstdLevel matches the klauspost SpeedDefault level used by pure Go
// builds, so tables come out alike whichever build wrote them.
const zstdLevel = 3

// Compress compresses a data section into one zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses zstd frames.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}

// DecompressSized decodes into a buffer with capacity for size bytes.
// Decompress has already bounded size by MaxDecompressedSize.
func (c ZstdCompressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(make([]byte, 0, size), data)
}
