package collate

import (
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/search"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/arloliu/ustring/transcode"
)

// Collator compares and searches linear UTF-16 buffers.
type Collator interface {
	// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
	Compare(a, b []uint16, opts Options) int
	// Find returns the unit offset and length of the first match of needle
	// in haystack, or of the last match when opts has Backwards.
	Find(haystack, needle []uint16, opts Options) (loc, length int, found bool)
}

// TextCollator is the default Collator. Ordinal requests compare code
// units; everything else goes through the collation tables of a locale.
//
// A TextCollator is safe for concurrent use.
type TextCollator struct {
	tag language.Tag

	mu        sync.Mutex
	collators map[Options]*collate.Collator
	matchers  map[Options]*search.Matcher
}

var _ Collator = (*TextCollator)(nil)

// NewTextCollator creates a collator for the given locale.
func NewTextCollator(tag language.Tag) *TextCollator {
	return &TextCollator{
		tag:       tag,
		collators: make(map[Options]*collate.Collator),
		matchers:  make(map[Options]*search.Matcher),
	}
}

// Tag returns the locale.
func (c *TextCollator) Tag() language.Tag {
	return c.tag
}

// collator returns the cached collator for opts. c.mu must be held.
func (c *TextCollator) collator(opts Options) *collate.Collator {
	key := opts & linguistic
	if col, ok := c.collators[key]; ok {
		return col
	}

	var copts []collate.Option
	if opts&CaseInsensitive != 0 {
		copts = append(copts, collate.IgnoreCase)
	}
	if opts&DiacriticInsensitive != 0 {
		copts = append(copts, collate.IgnoreDiacritics)
	}
	if opts&WidthInsensitive != 0 {
		copts = append(copts, collate.IgnoreWidth)
	}
	if opts&Numeric != 0 {
		copts = append(copts, collate.Numeric)
	}
	if opts&ForcedOrdering != 0 {
		copts = append(copts, collate.Force)
	}
	col := collate.New(c.tag, copts...)
	c.collators[key] = col

	return col
}

// matcher returns the cached matcher for opts. c.mu must be held.
func (c *TextCollator) matcher(opts Options) *search.Matcher {
	key := opts & (CaseInsensitive | DiacriticInsensitive | WidthInsensitive)
	if m, ok := c.matchers[key]; ok {
		return m
	}

	var sopts []search.Option
	if opts&CaseInsensitive != 0 {
		sopts = append(sopts, search.IgnoreCase)
	}
	if opts&DiacriticInsensitive != 0 {
		sopts = append(sopts, search.IgnoreDiacritics)
	}
	if opts&WidthInsensitive != 0 {
		sopts = append(sopts, search.IgnoreWidth)
	}
	m := search.New(c.tag, sopts...)
	c.matchers[key] = m

	return m
}

// Compare implements Collator.
func (c *TextCollator) Compare(a, b []uint16, opts Options) int {
	if opts.Ordinal() {
		return slices.Compare(a, b)
	}

	ab, bb := toUTF8(a), toUTF8(b)
	if opts&DiacriticInsensitive != 0 {
		// IgnoreDiacritics keeps the tertiary weight of combining marks.
		ab, bb = stripMarks(ab), stripMarks(bb)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.collator(opts).Compare(ab, bb)
}

// Find implements Collator.
func (c *TextCollator) Find(haystack, needle []uint16, opts Options) (loc, length int, found bool) {
	if len(needle) == 0 || len(haystack) == 0 {
		return 0, 0, false
	}
	if opts&(CaseInsensitive|DiacriticInsensitive|WidthInsensitive) == 0 {
		return findOrdinal(haystack, needle, opts)
	}

	h, n := toUTF8(haystack), toUTF8(needle)

	c.mu.Lock()
	pat := c.matcher(opts).Compile(n)
	start, end := findPattern(pat, h, opts)
	c.mu.Unlock()

	if start < 0 {
		return 0, 0, false
	}
	loc = unitCount(h[:start])

	return loc, unitCount(h[start:end]), true
}

// findPattern runs pat over h. Backward searches repeat anchored or
// unanchored forward searches, since the matcher only scans forward.
func findPattern(pat *search.Pattern, h []byte, opts Options) (start, end int) {
	backwards, anchored := opts&Backwards != 0, opts&Anchored != 0

	switch {
	case !backwards && anchored:
		return pat.Index(h, search.Anchor)
	case !backwards:
		return pat.Index(h)
	case anchored:
		for i := len(h) - 1; i >= 0; i-- {
			if !utf8.RuneStart(h[i]) {
				continue
			}
			if s, e := pat.Index(h[i:], search.Anchor); s >= 0 && i+e == len(h) {
				return i, len(h)
			}
		}

		return -1, -1
	default:
		start, end = -1, -1
		for off := 0; off < len(h); {
			s, e := pat.Index(h[off:])
			if s < 0 {
				break
			}
			start, end = off+s, off+e
			_, size := utf8.DecodeRune(h[start:])
			off = start + size
		}

		return start, end
	}
}

func findOrdinal(haystack, needle []uint16, opts Options) (loc, length int, found bool) {
	last := len(haystack) - len(needle)
	if last < 0 {
		return 0, 0, false
	}

	switch {
	case opts.Has(Backwards | Anchored):
		return last, len(needle), slices.Equal(haystack[last:], needle)
	case opts.Has(Anchored):
		return 0, len(needle), slices.Equal(haystack[:len(needle)], needle)
	case opts.Has(Backwards):
		for i := last; i >= 0; i-- {
			if slices.Equal(haystack[i:i+len(needle)], needle) {
				return i, len(needle), true
			}
		}
	default:
		for i := 0; i <= last; i++ {
			if haystack[i] == needle[0] && slices.Equal(haystack[i:i+len(needle)], needle) {
				return i, len(needle), true
			}
		}
	}

	return 0, 0, false
}

// markStrippers hands out NFD, remove Mn, NFC chains.
var markStrippers = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

// stripMarks removes combining diacritics from UTF-8 text.
func stripMarks(b []byte) []byte {
	t := markStrippers.Get().(transform.Transformer)
	defer func() {
		t.Reset()
		markStrippers.Put(t)
	}()

	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return b
	}

	return out
}

// toUTF8 converts units for the x/text collation tables. Lone surrogates
// become U+FFFD, which keeps one unit per replaced character.
func toUTF8(units []uint16) []byte {
	_, n := transcode.UTF16ToUTF8(units, 0xFFFD, nil)
	out := make([]byte, n)
	transcode.UTF16ToUTF8(units, 0xFFFD, out)

	return out
}

// unitCount returns the UTF-16 length of UTF-8 text produced by toUTF8.
func unitCount(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		n++
		if r > 0xFFFF {
			n++
		}
		b = b[size:]
	}

	return n
}
