package transcode

const hexDigits = "0123456789abcdef"

func hexValue(b byte) (uint16, bool) {
	switch {
	case b >= '0' && b <= '9':
		return uint16(b - '0'), true
	case b >= 'a' && b <= 'f':
		return uint16(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return uint16(b-'A') + 10, true
	default:
		return 0, false
	}
}

// decodeEscape decodes the escape starting at the backslash p[0].
func decodeEscape(p []byte) (uint16, int, seqStatus) {
	if len(p) < 2 {
		return 0, 0, seqIncomplete
	}

	switch c := p[1]; {
	case c == '\\':
		return '\\', 2, seqOK
	case c == 'u':
		var v uint16
		for i := 2; i < 6; i++ {
			if i >= len(p) {
				return 0, 0, seqIncomplete
			}
			d, ok := hexValue(p[i])
			if !ok {
				return 0, 1, seqInvalid
			}
			v = v<<4 | d
		}

		return v, 6, seqOK
	case c >= '0' && c <= '3':
		v := uint16(c - '0')
		for i := 2; i < 4; i++ {
			if i >= len(p) {
				return 0, 0, seqIncomplete
			}
			if p[i] < '0' || p[i] > '7' {
				return 0, 1, seqInvalid
			}
			v = v<<3 | uint16(p[i]-'0')
		}

		return v, 4, seqOK
	default:
		return 0, 1, seqInvalid
	}
}

// NonLossyToUTF16 decodes escaped non-lossy ASCII: plain 7-bit bytes,
// "\\" for a backslash, "\ooo" (three octal digits, at most 0377) and
// "\uXXXX" (four hex digits). A malformed escape or a byte >= 0x80 stops the
// conversion unless loss is non-zero; an escape cut off at the end of src
// always stops it.
func NonLossyToUTF16(src []byte, loss uint16, dst []uint16) (consumed, written int) {
	dry := dst == nil
	for consumed < len(src) {
		b := src[consumed]
		u, size, status := uint16(b), 1, seqOK
		switch {
		case b >= 0x80:
			status = seqInvalid
		case b == '\\':
			u, size, status = decodeEscape(src[consumed:])
		}

		switch status {
		case seqIncomplete:
			return consumed, written
		case seqInvalid:
			if loss == 0 {
				return consumed, written
			}
			u, size = loss, 1
		}

		if !dry {
			if written >= len(dst) {
				return consumed, written
			}
			dst[written] = u
		}
		consumed += size
		written++
	}

	return consumed, written
}

// nonLossyLen returns the escaped size of a unit.
func nonLossyLen(u uint16) int {
	switch {
	case u == '\\':
		return 2
	case u < 0x80:
		return 1
	case u <= 0xFF:
		return 4
	default:
		return 6
	}
}

// UTF16ToNonLossy escapes UTF-16 units as non-lossy ASCII. Every unit,
// including a lone surrogate, has an escaped form, so the conversion only
// stops when dst is full.
func UTF16ToNonLossy(src []uint16, dst []byte) (consumed, written int) {
	dry := dst == nil
	for _, u := range src {
		n := nonLossyLen(u)
		if !dry {
			if written+n > len(dst) {
				return consumed, written
			}
			out := dst[written : written+n]
			switch n {
			case 1:
				out[0] = byte(u)
			case 2:
				out[0], out[1] = '\\', '\\'
			case 4:
				out[0] = '\\'
				out[1] = '0' + byte(u>>6)
				out[2] = '0' + byte(u>>3)&7
				out[3] = '0' + byte(u)&7
			default:
				out[0], out[1] = '\\', 'u'
				out[2] = hexDigits[u>>12]
				out[3] = hexDigits[u>>8&0xF]
				out[4] = hexDigits[u>>4&0xF]
				out[5] = hexDigits[u&0xF]
			}
		}
		consumed++
		written += n
	}

	return consumed, written
}
