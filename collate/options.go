package collate

// Options selects how strings are compared and searched.
type Options uint32

const (
	// CaseInsensitive ignores case differences.
	CaseInsensitive Options = 1 << iota
	// Backwards searches from the end of the range.
	Backwards
	// Anchored only matches at the start of the range, or at its end when
	// combined with Backwards.
	Anchored
	// Numeric compares runs of digits by numeric value.
	Numeric
	// DiacriticInsensitive ignores accents and other diacritics.
	DiacriticInsensitive
	// WidthInsensitive treats full-width and half-width forms as equal.
	WidthInsensitive
	// ForcedOrdering breaks ties between strings that compare equal under
	// the other options.
	ForcedOrdering
)

// linguistic are the options the ordinal fast path cannot honour.
const linguistic = CaseInsensitive | Numeric | DiacriticInsensitive | WidthInsensitive | ForcedOrdering

// Has reports whether all of flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

// Ordinal reports whether o can be served by code unit comparison.
func (o Options) Ordinal() bool {
	return o&linguistic == 0
}

var optionNames = []struct {
	flag Options
	name string
}{
	{CaseInsensitive, "case-insensitive"},
	{Backwards, "backwards"},
	{Anchored, "anchored"},
	{Numeric, "numeric"},
	{DiacriticInsensitive, "diacritic-insensitive"},
	{WidthInsensitive, "width-insensitive"},
	{ForcedOrdering, "forced-ordering"},
}

// String returns the option names joined with '|', or "literal".
func (o Options) String() string {
	if o == 0 {
		return "literal"
	}

	var out string
	for _, n := range optionNames {
		if o&n.flag == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}

	return out
}

// ParseOptions resolves names produced by Options.String.
func ParseOptions(names []string) (Options, bool) {
	var o Options
next:
	for _, name := range names {
		if name == "literal" {
			continue
		}
		for _, n := range optionNames {
			if n.name == name {
				o |= n.flag
				continue next
			}
		}

		return 0, false
	}

	return o, true
}
