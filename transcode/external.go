package transcode

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	gdenc "github.com/gdamore/encoding"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/logging"
)

// ExternalCodec converts between UTF-16 and an encoding outside the
// built-in set. Implementations follow the same consumed/written contract
// as the built-in primitives.
type ExternalCodec interface {
	// Decode converts encoded bytes into UTF-16 units.
	Decode(src []byte, loss uint16, dst []uint16) (consumed, written int)
	// Encode converts UTF-16 units into encoded bytes.
	Encode(src []uint16, loss uint16, dst []byte) (consumed, written int)
	// MaxBytesPerUnit is the worst-case encoded size of one UTF-16 unit.
	MaxBytesPerUnit() int
}

var registry = struct {
	sync.RWMutex
	codecs map[format.Encoding]ExternalCodec
}{
	codecs: map[format.Encoding]ExternalCodec{
		format.EncodingMacRoman:        NewTextCodec(charmap.Macintosh, 1),
		format.EncodingWindowsLatin1:   NewTextCodec(charmap.Windows1252, 1),
		format.EncodingWindowsCyrillic: NewTextCodec(charmap.Windows1251, 1),
		format.EncodingISOLatin2:       NewTextCodec(charmap.ISO8859_2, 1),
		format.EncodingISOLatin5:       NewTextCodec(gdenc.ISO8859_9, 1),
		format.EncodingKOI8R:           NewTextCodec(charmap.KOI8R, 1),
		format.EncodingShiftJIS:        NewTextCodec(japanese.ShiftJIS, 2),
		format.EncodingEUCJP:           NewTextCodec(japanese.EUCJP, 3),
		format.EncodingEUCKR:           NewTextCodec(korean.EUCKR, 2),
		format.EncodingGBK:             NewTextCodec(simplifiedchinese.GBK, 2),
		format.EncodingBig5:            NewTextCodec(traditionalchinese.Big5, 2),
		format.EncodingEBCDICCP037:     NewTextCodec(gdenc.EBCDIC, 1),
	},
}

// RegisterExternal installs codec for enc, replacing any previous codec.
// Built-in encodings cannot be overridden.
func RegisterExternal(enc format.Encoding, codec ExternalCodec) error {
	if enc.IsBuiltin() {
		return fmt.Errorf("%w: %s is built in", errs.ErrUnsupportedEncoding, enc)
	}
	if codec == nil {
		return errors.New("transcode: nil external codec")
	}

	registry.Lock()
	registry.codecs[enc] = codec
	registry.Unlock()

	return nil
}

// LookupExternal returns the external codec registered for enc.
func LookupExternal(enc format.Encoding) (ExternalCodec, bool) {
	registry.RLock()
	codec, ok := registry.codecs[enc]
	registry.RUnlock()

	if !ok {
		logging.L("transcode").Debug("no codec for encoding", "encoding", uint32(enc))
	}

	return codec, ok
}

// textCodec adapts an x/text encoding.Encoding to ExternalCodec. The
// adapter pivots through UTF-8, which is what x/text transformers speak.
//
// x/text decoders replace malformed input with U+FFFD, so decoding through
// an external codec never stops on bad bytes; it only stops on an
// incomplete trailing sequence or a full dst.
type textCodec struct {
	enc      encoding.Encoding
	maxBytes int
}

// NewTextCodec wraps an x/text (or x/text compatible) encoding as an
// ExternalCodec. maxBytes is the widest encoded form of one UTF-16 unit.
func NewTextCodec(enc encoding.Encoding, maxBytes int) ExternalCodec {
	return &textCodec{enc: enc, maxBytes: maxBytes}
}

func (c *textCodec) MaxBytesPerUnit() int {
	return c.maxBytes
}

// Decode converts bytes in chunks while dst has room for a whole chunk,
// then one character at a time. A UTF-8 chunk of n bytes never needs more
// than n UTF-16 units, which keeps consumed exact.
func (c *textCodec) Decode(src []byte, _ uint16, dst []uint16) (consumed, written int) {
	dec := c.enc.NewDecoder()
	var pivot [256]byte

	for consumed < len(src) {
		room := len(pivot)
		if dst != nil {
			room = min(room, len(dst)-written)
		}
		if room < utf8.UTFMax {
			n, w, ok := c.decodeOne(dec, src[consumed:], dst, written)
			if !ok {
				return consumed, written
			}
			consumed += n
			written += w

			continue
		}

		nDst, nSrc, err := dec.Transform(pivot[:room], src[consumed:], false)
		written += widenPivot(pivot[:nDst], dst, written)
		consumed += nSrc
		if nSrc == 0 {
			return consumed, written
		}
		if err != nil && !errors.Is(err, transform.ErrShortDst) && !errors.Is(err, transform.ErrShortSrc) {
			return consumed, written
		}
	}

	return consumed, written
}

// decodeOne decodes exactly one character by feeding growing prefixes of
// src until the decoder emits output.
func (c *textCodec) decodeOne(dec *encoding.Decoder, src []byte, dst []uint16, at int) (int, int, bool) {
	var pivot [utf8.UTFMax]byte
	for k := 1; k <= len(src) && k <= utf8.UTFMax; k++ {
		dec.Reset()
		nDst, nSrc, _ := dec.Transform(pivot[:], src[:k], false)
		if nDst == 0 {
			continue
		}
		r, _ := utf8.DecodeRune(pivot[:nDst])
		n := 1
		if r >= 0x10000 {
			n = 2
		}
		if dst != nil {
			if at+n > len(dst) {
				return 0, 0, false
			}
			putUTF16(dst[at:], r)
		}

		return nSrc, n, true
	}

	return 0, 0, false
}

// widenPivot converts complete UTF-8 runes into dst at offset at.
func widenPivot(p []byte, dst []uint16, at int) int {
	n := 0
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		if r >= 0x10000 {
			if dst != nil {
				putUTF16(dst[at+n:], r)
			}
			n += 2
		} else {
			if dst != nil {
				dst[at+n] = uint16(r)
			}
			n++
		}
	}

	return n
}

// Encode converts one code point at a time. A code point counts as
// representable only if its encoded form decodes back to the same code
// point, which catches encoders that silently substitute.
func (c *textCodec) Encode(src []uint16, loss uint16, dst []byte) (consumed, written int) {
	enc := c.enc.NewEncoder()
	dec := c.enc.NewDecoder()
	var out [16]byte

	for consumed < len(src) {
		r, size, ok := nextCodePoint(src, consumed)
		var b []byte
		if ok {
			b, ok = c.encodeRune(enc, dec, r, out[:])
		}
		if !ok {
			if loss == 0 {
				return consumed, written
			}
			if b, ok = c.encodeRune(enc, dec, lossRune(loss), out[:]); !ok {
				b = append(out[:0], '?')
			}
		}
		if dst != nil {
			if written+len(b) > len(dst) {
				return consumed, written
			}
			copy(dst[written:], b)
		}
		consumed += size
		written += len(b)
	}

	return consumed, written
}

func (c *textCodec) encodeRune(enc *encoding.Encoder, dec *encoding.Decoder, r rune, out []byte) ([]byte, bool) {
	var in [utf8.UTFMax]byte
	n := utf8.EncodeRune(in[:], r)

	enc.Reset()
	nDst, _, err := enc.Transform(out, in[:n], true)
	if err != nil || nDst == 0 {
		return nil, false
	}

	var back [utf8.UTFMax * 2]byte
	dec.Reset()
	bDst, _, err := dec.Transform(back[:], out[:nDst], true)
	if err != nil {
		return nil, false
	}
	if got, size := utf8.DecodeRune(back[:bDst]); got != r || size != bDst {
		return nil, false
	}

	return out[:nDst], true
}
