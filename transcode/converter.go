package transcode

import (
	"github.com/arloliu/ustring/endian"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/options"
)

// Converter performs a chunked conversion between an encoding and UTF-16.
//
// A Converter remembers the byte order read from a leading BOM and whether
// it has already written one, so a stream can be fed through it in
// fixed-size pieces. Unconsumed input must be passed again, prefixed to the
// next chunk. A Converter is not safe for concurrent use.
type Converter struct {
	enc      format.Encoding
	loss     uint16
	external bool

	order      endian.EndianEngine // nil until read from a BOM (decode) or first write (encode)
	bomWritten bool
}

// ConverterOption configures a Converter.
type ConverterOption = options.Option[*Converter]

// WithLossUnit sets the substitution unit used for unconvertible input.
// Zero, the default, stops at the first unconvertible unit.
func WithLossUnit(loss uint16) ConverterOption {
	return options.NoError(func(c *Converter) {
		c.loss = loss
	})
}

// WithExternalRepresentation makes Encode emit a byte order mark once, at
// the start of the stream, for the BOM-aware UTF-16 and UTF-32 variants.
func WithExternalRepresentation(external bool) ConverterOption {
	return options.NoError(func(c *Converter) {
		c.external = external
	})
}

// NewConverter creates a Converter for enc.
//
// Returns:
//   - *Converter: The converter
//   - error: errs.ErrUnsupportedEncoding when enc has no codec
func NewConverter(enc format.Encoding, opts ...ConverterOption) (*Converter, error) {
	c := &Converter{enc: enc}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	if _, err := decoderFor(enc, nil); err != nil {
		return nil, err
	}

	return c, nil
}

// Encoding returns the encoding the converter was created for.
func (c *Converter) Encoding() format.Encoding {
	return c.enc
}

// Reset forgets the byte order and BOM state so the converter can start a
// new stream.
func (c *Converter) Reset() {
	c.order = nil
	c.bomWritten = false
}

// Decode converts the next chunk of encoded bytes into UTF-16 units.
//
// An incomplete trailing sequence is left unconsumed unless atEOF is true
// and a loss unit is configured, in which case each remaining byte becomes
// one loss unit.
func (c *Converter) Decode(src []byte, dst []uint16, atEOF bool) (consumed, written int) {
	if n := bomSize(c.enc); n > 0 && c.order == nil {
		if len(src) < n && !atEOF {
			return 0, 0
		}
		c.order, consumed = sniffBOM(c.enc, src)
	}

	fn, err := decoderFor(c.enc, c.order)
	if err != nil {
		return 0, 0
	}

	for {
		var tail []uint16
		if dst != nil {
			tail = dst[written:]
		}
		n, w := fn(src[consumed:], c.loss, tail)
		consumed += n
		written += w
		if consumed == len(src) || !atEOF || c.loss == 0 {
			return consumed, written
		}
		// A dry run that makes progress means the stop was a full dst.
		if n, _ := fn(src[consumed:], c.loss, nil); n > 0 {
			return consumed, written
		}
		if dst != nil {
			if written >= len(dst) {
				return consumed, written
			}
			dst[written] = c.loss
		}
		consumed++
		written++
	}
}

// Encode converts the next chunk of UTF-16 units into the target encoding.
//
// Unless atEOF is true a trailing lead surrogate is held back, since its
// trail may arrive with the next chunk.
func (c *Converter) Encode(src []uint16, dst []byte, atEOF bool) (consumed, written int) {
	if c.order == nil {
		c.order = endian.GetNativeEngine()
	}
	fn, err := encoderFor(c.enc, c.order)
	if err != nil {
		return 0, 0
	}

	if n := bomSize(c.enc); c.external && n > 0 && !c.bomWritten {
		if dst != nil {
			if len(dst) < n {
				return 0, 0
			}
			putBOM(c.enc, c.order, dst)
			c.bomWritten = true
		}
		written = n
	}

	limit := len(src)
	if !atEOF && limit > 0 && src[limit-1] >= 0xD800 && src[limit-1] <= 0xDBFF {
		limit--
	}

	var tail []byte
	if dst != nil {
		tail = dst[written:]
	}
	n, w := fn(src[:limit], c.loss, tail)

	return n, written + w
}
