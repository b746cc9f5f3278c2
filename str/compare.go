package str

import "bytes"

// Equal reports whether a and b hold the same UTF-16 units.
func Equal(a, b Text) bool {
	n := a.Len()
	if n != b.Len() {
		return false
	}
	if x, y := a.FastASCII(), b.FastASCII(); x != nil && y != nil {
		return bytes.Equal(x, y)
	}

	return Compare(a, b) == 0
}

// Compare orders a and b by UTF-16 code unit value. It returns -1, 0 or +1.
func Compare(a, b Text) int {
	if x, y := a.FastASCII(), b.FastASCII(); x != nil && y != nil {
		return bytes.Compare(x, y)
	}

	na, nb := a.Len(), b.Len()
	ua, ub := a.FastUnits(), b.FastUnits()
	for i := range min(na, nb) {
		var ca, cb uint16
		if ua != nil {
			ca = ua[i]
		} else {
			ca = a.CharacterAt(i)
		}
		if ub != nil {
			cb = ub[i]
		} else {
			cb = b.CharacterAt(i)
		}
		if ca != cb {
			if ca < cb {
				return -1
			}

			return 1
		}
	}

	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}
