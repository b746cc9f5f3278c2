package transcode

// lossByte narrows a substitution unit to a single byte no greater than
// limit, falling back to '?'.
func lossByte(loss uint16, limit uint16) byte {
	if loss <= limit {
		return byte(loss)
	}

	return '?'
}

// ASCIIToUTF16 widens 7-bit ASCII bytes. A byte >= 0x80 stops the
// conversion unless loss is non-zero.
func ASCIIToUTF16(src []byte, loss uint16, dst []uint16) (consumed, written int) {
	dry := dst == nil
	for _, b := range src {
		u := uint16(b)
		if b >= 0x80 {
			if loss == 0 {
				return consumed, written
			}
			u = loss
		}
		if !dry {
			if written >= len(dst) {
				return consumed, written
			}
			dst[written] = u
		}
		consumed++
		written++
	}

	return consumed, written
}

// UTF16ToASCII narrows UTF-16 units to 7-bit ASCII. A code point >= 0x80
// stops the conversion unless loss is non-zero; a surrogate pair is replaced
// by a single loss byte.
func UTF16ToASCII(src []uint16, loss uint16, dst []byte) (consumed, written int) {
	return narrow(src, loss, 0x7F, dst)
}

// Latin1ToUTF16 widens ISO Latin-1 bytes. Every byte maps to the code point
// of the same value, so the conversion only stops when dst is full.
func Latin1ToUTF16(src []byte, dst []uint16) (consumed, written int) {
	if dst == nil {
		return len(src), len(src)
	}
	n := min(len(src), len(dst))
	for i := range n {
		dst[i] = uint16(src[i])
	}

	return n, n
}

// UTF16ToLatin1 narrows UTF-16 units to ISO Latin-1. A code point above 0xFF
// stops the conversion unless loss is non-zero.
func UTF16ToLatin1(src []uint16, loss uint16, dst []byte) (consumed, written int) {
	return narrow(src, loss, 0xFF, dst)
}

func narrow(src []uint16, loss uint16, limit uint16, dst []byte) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		u := src[consumed]
		size := 1
		b := byte(u)
		if u > limit {
			if loss == 0 {
				return consumed, written
			}
			if _, n, ok := nextCodePoint(src, consumed); ok {
				size = n
			}
			b = lossByte(loss, limit)
		}
		if !dry {
			if written >= len(dst) {
				return consumed, written
			}
			dst[written] = b
		}
		consumed += size
		written++
	}

	return consumed, written
}
