package str

// Strings longer than hashFullLimit units hash only their first, middle and
// last hashSampleLen units.
const (
	hashFullLimit = 96
	hashSampleLen = 32
)

// hashText is a rolling multiply-add hash over the UTF-16 units of t. Both
// representations of the same content hash alike. The result is never 0,
// which marks a hash that has not been computed.
func hashText(t Text) uint32 {
	n := t.Len()
	h := uint32(n)

	ascii, units := t.FastASCII(), t.FastUnits()
	mix := func(from, to int) {
		switch {
		case ascii != nil:
			for _, b := range ascii[from:to] {
				h = h*257 + uint32(b)
			}
		case units != nil:
			for _, u := range units[from:to] {
				h = h*257 + uint32(u)
			}
		default:
			for i := from; i < to; i++ {
				h = h*257 + uint32(t.CharacterAt(i))
			}
		}
	}

	if n <= hashFullLimit {
		mix(0, n)
	} else {
		mix(0, hashSampleLen)
		mix(n/2-hashSampleLen/2, n/2+hashSampleLen/2)
		mix(n-hashSampleLen, n)
	}
	h += h << (uint(n) & 31)

	if h == 0 {
		h = 1
	}

	return h
}
