package collate

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/arloliu/ustring/internal/options"
	"github.com/arloliu/ustring/str"
)

// Searcher maps string ranges to and from a Collator.
type Searcher struct {
	collator Collator
}

// Option configures a Searcher.
type Option = options.Option[*Searcher]

// WithCollator sets the collator. The default is a TextCollator for the
// undetermined locale.
func WithCollator(c Collator) Option {
	return options.New(func(s *Searcher) error {
		if c == nil {
			return fmt.Errorf("collate: nil collator")
		}
		s.collator = c

		return nil
	})
}

// WithLocale uses a TextCollator for tag.
func WithLocale(tag language.Tag) Option {
	return options.NoError(func(s *Searcher) {
		s.collator = NewTextCollator(tag)
	})
}

// New creates a Searcher.
func New(opts ...Option) (*Searcher, error) {
	s := &Searcher{collator: NewTextCollator(language.Und)}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Collator returns the collator in use.
func (s *Searcher) Collator() Collator {
	return s.collator
}

// Find searches for needle within r of haystack. The returned range is in
// haystack coordinates. An empty needle never matches. It panics when r
// does not fit haystack.
func (s *Searcher) Find(haystack, needle str.Text, r str.Range, opts Options) (str.Range, bool) {
	h := str.Units(haystack, r)
	n := str.Units(needle, str.Whole(needle.Len()))

	loc, length, ok := s.collator.Find(h, n, opts)
	if !ok {
		return str.Range{}, false
	}

	return str.Range{Location: r.Location + loc, Length: length}, true
}

// FindAll returns every non-overlapping forward match of needle within r.
func (s *Searcher) FindAll(haystack, needle str.Text, r str.Range, opts Options) []str.Range {
	opts &^= Backwards | Anchored

	var out []str.Range
	rest := r
	for rest.Length > 0 {
		m, ok := s.Find(haystack, needle, rest, opts)
		if !ok {
			break
		}
		out = append(out, m)

		next := m.End()
		if m.Length == 0 {
			next++
		}
		rest = str.Range{Location: next, Length: r.End() - next}
	}

	return out
}

// Compare compares a and b.
func (s *Searcher) Compare(a, b str.Text, opts Options) int {
	return s.CompareRange(a, str.Whole(a.Len()), b, opts)
}

// CompareRange compares the units of a within r to all of b.
func (s *Searcher) CompareRange(a str.Text, r str.Range, b str.Text, opts Options) int {
	return s.collator.Compare(str.Units(a, r), str.Units(b, str.Whole(b.Len())), opts)
}

// HasPrefix reports whether text starts with prefix.
func (s *Searcher) HasPrefix(text, prefix str.Text, opts Options) bool {
	_, ok := s.Find(text, prefix, str.Whole(text.Len()), (opts|Anchored)&^Backwards)
	return ok
}

// HasSuffix reports whether text ends with suffix.
func (s *Searcher) HasSuffix(text, suffix str.Text, opts Options) bool {
	_, ok := s.Find(text, suffix, str.Whole(text.Len()), opts|Anchored|Backwards)
	return ok
}

var defaultSearcher = &Searcher{collator: NewTextCollator(language.Und)}

// Find searches with the default Searcher.
func Find(haystack, needle str.Text, r str.Range, opts Options) (str.Range, bool) {
	return defaultSearcher.Find(haystack, needle, r, opts)
}

// FindAll searches with the default Searcher.
func FindAll(haystack, needle str.Text, r str.Range, opts Options) []str.Range {
	return defaultSearcher.FindAll(haystack, needle, r, opts)
}

// Compare compares with the default Searcher.
func Compare(a, b str.Text, opts Options) int {
	return defaultSearcher.Compare(a, b, opts)
}

// HasPrefix tests with the default Searcher.
func HasPrefix(text, prefix str.Text, opts Options) bool {
	return defaultSearcher.HasPrefix(text, prefix, opts)
}

// HasSuffix tests with the default Searcher.
func HasSuffix(text, suffix str.Text, opts Options) bool {
	return defaultSearcher.HasSuffix(text, suffix, opts)
}
