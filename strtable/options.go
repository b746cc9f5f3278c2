package strtable

import (
	"fmt"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression selects the data section compression. The default is
// format.CompressionNone.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.header.Flag.SetDataCompression(compression)
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compression)
		}
	})
}

// WithLittleEndian stores numbers and UTF-16 data little-endian. This is
// the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithLittleEndian()
		e.engine = e.header.GetEndianEngine()
	})
}

// WithBigEndian stores numbers and UTF-16 data big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.WithBigEndian()
		e.engine = e.header.GetEndianEngine()
	})
}

// WithDeduplication controls whether identical strings share a data
// block. It is enabled by default.
func WithDeduplication(enabled bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Flag.SetDeduplicated(enabled)
	})
}
