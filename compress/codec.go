package compress

import (
	"fmt"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
)

// Compressor compresses a complete data section.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified. It returns errs.ErrIncompressible when the algorithm cannot
	// represent data in fewer bytes.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a data section.
type Decompressor interface {
	// Decompress returns the original form of data, or an error when data
	// is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// MaxDecompressedSize bounds the data section any codec will restore.
const MaxDecompressedSize = 128 * 1024 * 1024

// SizedDecompressor is implemented by codecs that decompress faster when
// the original size is known, as it is for string tables. Implementations
// reject a size that the compressed input cannot produce before
// allocating for it.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression of a data section.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// OriginalSize is the size before compression.
	OriginalSize int64
	// CompressedSize is the size after compression.
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for an
// empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// Decompress restores data with the codec for compressionType. size is
// the expected original size; a result of any other size is an error.
func Decompress(compressionType format.CompressionType, data []byte, size int) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}
	if size < 0 || size > MaxDecompressedSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", errs.ErrInvalidDataSection, size, MaxDecompressedSize)
	}

	var out []byte
	if sized, ok := codec.(SizedDecompressor); ok {
		out, err = sized.DecompressSized(data, size)
	} else {
		out, err = codec.Decompress(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", compressionType, err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", errs.ErrInvalidDataSection, len(out), size)
	}

	return out, nil
}
