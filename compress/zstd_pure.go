//go:build !cgo || !gozstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/ustring/errs"
)

// zstdDecoderPool holds single-goroutine decoders capped at
// MaxDecompressedSize, so a frame cannot claim more than a table may hold.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(MaxDecompressedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPool holds encoders without frame checksums; every string
// in a table carries its own hash.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses a data section into one zstd frame. The frame
// header records the section size.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses zstd frames.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.decode(data, nil)
}

// DecompressSized checks the frame content size, when the header has
// one, against size before decoding into a buffer of that capacity.
func (c ZstdCompressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd frame header: %w", err)
	}
	if hdr.HasFCS && hdr.FrameContentSize != uint64(size) { //nolint:gosec
		return nil, fmt.Errorf("%w: frame holds %d bytes, expected %d", errs.ErrInvalidDataSection, hdr.FrameContentSize, size)
	}

	return c.decode(data, make([]byte, 0, size))
}

func (c ZstdCompressor) decode(data, dst []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
