package transcode

import "github.com/arloliu/ustring/format"

type seqStatus uint8

const (
	seqOK seqStatus = iota
	seqInvalid
	seqIncomplete
)

// lossRune returns the rune to emit for a substitution unit. A surrogate
// cannot stand alone in UTF-8 or UTF-32, so it degrades to '?'.
func lossRune(loss uint16) rune {
	if loss >= 0xD800 && loss <= 0xDFFF {
		return '?'
	}

	return rune(loss)
}

// decodeUTF8 decodes one multi-byte sequence at the start of p.
func decodeUTF8(p []byte) (rune, int, seqStatus) {
	b0 := p[0]

	var n int
	var r rune
	switch {
	case b0 < 0xC2:
		// stray continuation byte or overlong two-byte lead
		return 0, 1, seqInvalid
	case b0 < 0xE0:
		n, r = 2, rune(b0&0x1F)
	case b0 < 0xF0:
		n, r = 3, rune(b0&0x0F)
	case b0 < 0xF5:
		n, r = 4, rune(b0&0x07)
	default:
		return 0, 1, seqInvalid
	}

	for i := 1; i < n; i++ {
		if i >= len(p) {
			return 0, 0, seqIncomplete
		}
		if p[i]&0xC0 != 0x80 {
			return 0, 1, seqInvalid
		}
		r = r<<6 | rune(p[i]&0x3F)
	}

	switch n {
	case 3:
		if r < 0x800 || (r >= 0xD800 && r <= 0xDFFF) {
			return 0, 1, seqInvalid
		}
	case 4:
		if r < 0x10000 || r > 0x10FFFF {
			return 0, 1, seqInvalid
		}
	}

	return r, n, seqOK
}

// UTF8ToUTF16 decodes UTF-8 bytes into UTF-16 code units.
//
// Conversion stops at a lead byte whose promised trailing bytes are not all
// present (so a chunked caller can resume once more input arrives), and at
// a malformed sequence, an overlong form or an encoded surrogate when loss
// is zero. With a non-zero loss each malformed lead byte is replaced by one
// loss unit.
//
// Parameters:
//   - src: UTF-8 input
//   - loss: Substitution unit, or 0 to stop at malformed input
//   - dst: Destination units, or nil for a dry run
//
// Returns:
//   - consumed: Bytes of src converted
//   - written: Units written to (or required in) dst
func UTF8ToUTF16(src []byte, loss uint16, dst []uint16) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		b := src[consumed]
		if b < 0x80 {
			if !dry {
				if written >= len(dst) {
					return consumed, written
				}
				dst[written] = uint16(b)
			}
			consumed++
			written++

			continue
		}

		r, size, status := decodeUTF8(src[consumed:])
		switch status {
		case seqIncomplete:
			return consumed, written
		case seqInvalid:
			if loss == 0 {
				return consumed, written
			}
			if !dry {
				if written >= len(dst) {
					return consumed, written
				}
				dst[written] = loss
			}
			consumed += size
			written++

			continue
		}

		if r >= 0x10000 {
			if !dry {
				if written+2 > len(dst) {
					return consumed, written
				}
				r -= 0x10000
				dst[written] = uint16(0xD800 + (r >> 10))
				dst[written+1] = uint16(0xDC00 + (r & 0x3FF))
			}
			written += 2
		} else {
			if !dry {
				if written >= len(dst) {
					return consumed, written
				}
				dst[written] = uint16(r)
			}
			written++
		}
		consumed += size
	}

	return consumed, written
}

// nextCodePoint reads one code point from UTF-16 units. ok is false for a
// lone surrogate (a lead at the end of src or not followed by a trail, or a
// stray trail); size is then 1.
func nextCodePoint(src []uint16, i int) (r rune, size int, ok bool) {
	u := src[i]
	switch {
	case u < 0xD800 || u > 0xDFFF:
		return rune(u), 1, true
	case u <= 0xDBFF:
		if i+1 < len(src) {
			if t := src[i+1]; t >= 0xDC00 && t <= 0xDFFF {
				return 0x10000 + (rune(u)-0xD800)<<10 + (rune(t) - 0xDC00), 2, true
			}
		}

		return 0, 1, false
	default:
		return 0, 1, false
	}
}

func utf8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func putUTF8(dst []byte, r rune) {
	switch n := utf8Len(r); n {
	case 1:
		dst[0] = byte(r)
	case 2:
		dst[0] = 0xC0 | byte(r>>6)
		dst[1] = 0x80 | byte(r)&0x3F
	case 3:
		dst[0] = 0xE0 | byte(r>>12)
		dst[1] = 0x80 | byte(r>>6)&0x3F
		dst[2] = 0x80 | byte(r)&0x3F
	default:
		dst[0] = 0xF0 | byte(r>>18)
		dst[1] = 0x80 | byte(r>>12)&0x3F
		dst[2] = 0x80 | byte(r>>6)&0x3F
		dst[3] = 0x80 | byte(r)&0x3F
	}
}

// UTF16ToUTF8 encodes UTF-16 code units as UTF-8.
//
// A lone lead surrogate at the end of src, a lead surrogate not followed by
// a trail, or a stray trail stops the conversion unless loss is non-zero, in
// which case the offending unit is replaced by the UTF-8 form of loss.
func UTF16ToUTF8(src []uint16, loss uint16, dst []byte) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		u := src[consumed]
		if u < 0x80 {
			if !dry {
				if written >= len(dst) {
					return consumed, written
				}
				dst[written] = byte(u)
			}
			consumed++
			written++

			continue
		}

		r, size, ok := nextCodePoint(src, consumed)
		if !ok {
			if loss == 0 {
				return consumed, written
			}
			r = lossRune(loss)
		}

		n := utf8Len(r)
		if !dry {
			if written+n > len(dst) {
				return consumed, written
			}
			putUTF8(dst[written:], r)
		}
		consumed += size
		written += n
	}

	return consumed, written
}

// MaxUTF8Bytes returns the worst-case UTF-8 size of n UTF-16 units.
func MaxUTF8Bytes(n int) int {
	// A BMP unit takes at most 3 bytes and a surrogate pair takes 4 for 2 units.
	return n * (format.MaxUTF8Length - 1)
}
