package transcode

import "github.com/arloliu/ustring/endian"

// UTF16ToUTF32 decodes UTF-16 code units into code points. Lone surrogates
// are handled as in UTF16ToUTF8.
func UTF16ToUTF32(src []uint16, loss uint16, dst []rune) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		r, size, ok := nextCodePoint(src, consumed)
		if !ok {
			if loss == 0 {
				return consumed, written
			}
			r = lossRune(loss)
		}
		if !dry {
			if written >= len(dst) {
				return consumed, written
			}
			dst[written] = r
		}
		consumed += size
		written++
	}

	return consumed, written
}

// validScalar reports whether r is a Unicode scalar value.
func validScalar(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && (r < 0xD800 || r > 0xDFFF)
}

// UTF32ToUTF16 encodes code points as UTF-16. Values in the surrogate range
// or above U+10FFFF always stop the conversion; UTF-32 input has no
// substitution.
func UTF32ToUTF16(src []rune, dst []uint16) (consumed, written int) {
	dry := dst == nil
	for _, r := range src {
		if !validScalar(r) {
			return consumed, written
		}
		n := 1
		if r >= 0x10000 {
			n = 2
		}
		if !dry {
			if written+n > len(dst) {
				return consumed, written
			}
			putUTF16(dst[written:], r)
		}
		consumed++
		written += n
	}

	return consumed, written
}

func putUTF16(dst []uint16, r rune) {
	if r < 0x10000 {
		dst[0] = uint16(r)

		return
	}
	r -= 0x10000
	dst[0] = uint16(0xD800 + (r >> 10))
	dst[1] = uint16(0xDC00 + (r & 0x3FF))
}

// DecodeUTF16Bytes reads UTF-16 code units serialized in the given byte
// order. Any unit sequence is accepted; a trailing odd byte is left
// unconsumed.
//
// Returns:
//   - consumed: Bytes of src converted (always even)
//   - written: Units written to (or required in) dst
func DecodeUTF16Bytes(src []byte, order endian.EndianEngine, dst []uint16) (consumed, written int) {
	n := len(src) / 2
	if dst != nil && len(dst) < n {
		n = len(dst)
	}
	if dst != nil {
		for i := range n {
			dst[i] = order.Uint16(src[i*2:])
		}
	}

	return n * 2, n
}

// EncodeUTF16Bytes serializes UTF-16 code units in the given byte order.
func EncodeUTF16Bytes(src []uint16, order endian.EndianEngine, dst []byte) (consumed, written int) {
	n := len(src)
	if dst != nil && len(dst)/2 < n {
		n = len(dst) / 2
	}
	if dst != nil {
		for i := range n {
			order.PutUint16(dst[i*2:], src[i])
		}
	}

	return n, n * 2
}

// DecodeUTF32Bytes reads UTF-32 code points serialized in the given byte
// order into UTF-16 units. Surrogate-range values and values above U+10FFFF
// stop the conversion.
func DecodeUTF32Bytes(src []byte, order endian.EndianEngine, dst []uint16) (consumed, written int) {
	dry := dst == nil
	for consumed+4 <= len(src) {
		v := order.Uint32(src[consumed:])
		if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return consumed, written
		}
		r := rune(v)
		n := 1
		if r >= 0x10000 {
			n = 2
		}
		if !dry {
			if written+n > len(dst) {
				return consumed, written
			}
			putUTF16(dst[written:], r)
		}
		consumed += 4
		written += n
	}

	return consumed, written
}

// EncodeUTF32Bytes serializes UTF-16 code units as UTF-32 in the given byte
// order. Lone surrogates are handled as in UTF16ToUTF8.
func EncodeUTF32Bytes(src []uint16, order endian.EndianEngine, loss uint16, dst []byte) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		r, size, ok := nextCodePoint(src, consumed)
		if !ok {
			if loss == 0 {
				return consumed, written
			}
			r = lossRune(loss)
		}
		if !dry {
			if written+4 > len(dst) {
				return consumed, written
			}
			order.PutUint32(dst[written:], uint32(r))
		}
		consumed += size
		written += 4
	}

	return consumed, written
}
