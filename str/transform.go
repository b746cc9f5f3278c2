package str

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizationForm selects a Unicode normalization form.
type NormalizationForm = norm.Form

// Normalization forms accepted by Normalize.
const (
	NFC  = norm.NFC
	NFD  = norm.NFD
	NFKC = norm.NFKC
	NFKD = norm.NFKD
)

type stringMapper interface {
	String(s string) string
}

// mapWith rewrites the whole content through a Go string mapper. Lone
// surrogates do not survive the round trip and become U+FFFD.
func (m *MutableString) mapWith(fn stringMapper) {
	if len(m.units) == 0 {
		return
	}
	m.SetGoString(fn.String(m.String()))
}

// Lowercase maps the content to lower case using the rules of tag.
func (m *MutableString) Lowercase(tag language.Tag) {
	m.mapWith(cases.Lower(tag))
}

// Uppercase maps the content to upper case using the rules of tag.
func (m *MutableString) Uppercase(tag language.Tag) {
	m.mapWith(cases.Upper(tag))
}

// Capitalize maps the first letter of each word to title case and the rest
// to lower case using the rules of tag.
func (m *MutableString) Capitalize(tag language.Tag) {
	m.mapWith(cases.Title(tag))
}

// Fold applies Unicode case folding for caseless matching.
func (m *MutableString) Fold() {
	m.mapWith(cases.Fold())
}

// Normalize converts the content to the given normalization form.
func (m *MutableString) Normalize(form NormalizationForm) {
	m.mapWith(form)
}
