package printf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberSpec is the part of a specifier a NumberFormatter needs.
type NumberSpec struct {
	Flags     Flags
	Width     int
	Precision int  // -1 when absent
	Verb      byte // one of d u f F e E g G
}

func (s NumberSpec) has(f Flags) bool {
	return s.Flags&f != 0
}

// NumberFormatter renders decimal numbers. Implementations append UTF-8
// text, padded to the spec's width.
type NumberFormatter interface {
	AppendInt(dst []byte, spec NumberSpec, v int64) []byte
	AppendUint(dst []byte, spec NumberSpec, v uint64) []byte
	AppendFloat(dst []byte, spec NumberSpec, v float64) []byte
}

// POSIXNumbers renders numbers the way the C locale does: no digit
// grouping, '.' as the decimal separator.
type POSIXNumbers struct{}

var _ NumberFormatter = POSIXNumbers{}

// AppendInt implements NumberFormatter.
func (POSIXNumbers) AppendInt(dst []byte, spec NumberSpec, v int64) []byte {
	return fmt.Appendf(dst, fmtVerb(spec, 'd', true), v)
}

// AppendUint implements NumberFormatter.
func (POSIXNumbers) AppendUint(dst []byte, spec NumberSpec, v uint64) []byte {
	return fmt.Appendf(dst, fmtVerb(spec, 'd', false), v)
}

// AppendFloat implements NumberFormatter.
func (POSIXNumbers) AppendFloat(dst []byte, spec NumberSpec, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return appendNonFinite(dst, spec, v)
	}

	verb := spec.Verb
	switch verb {
	case 'F':
		verb = 'f'
	case 'g', 'G':
		if spec.Precision < 0 {
			spec.Precision = 6
		}
	}

	return fmt.Appendf(dst, fmtVerb(spec, verb, true), v)
}

// fmtVerb builds the fmt verb for spec. Sign flags only apply to signed
// conversions.
func fmtVerb(spec NumberSpec, verb byte, signed bool) string {
	b := make([]byte, 0, 16)
	b = append(b, '%')
	if spec.has(FlagMinus) {
		b = append(b, '-')
	}
	if signed && spec.has(FlagPlus) {
		b = append(b, '+')
	}
	if signed && spec.has(FlagSpace) {
		b = append(b, ' ')
	}
	if spec.has(FlagAlternate) && verb != 'd' {
		b = append(b, '#')
	}
	if spec.has(FlagZero) {
		b = append(b, '0')
	}
	if spec.Width > 0 {
		b = strconv.AppendInt(b, int64(spec.Width), 10)
	}
	if spec.Precision >= 0 {
		b = append(b, '.')
		b = strconv.AppendInt(b, int64(spec.Precision), 10)
	}

	return string(append(b, verb))
}

// appendNonFinite renders NaN and the infinities as nan and inf, in upper
// case for the upper-case verbs. Zero padding does not apply.
func appendNonFinite(dst []byte, spec NumberSpec, v float64) []byte {
	body := "inf"
	if math.IsNaN(v) {
		body = "nan"
	}
	if spec.Verb >= 'A' && spec.Verb <= 'Z' {
		body = strings.ToUpper(body)
	}

	spec.Flags &^= FlagZero

	return appendPadded(dst, spec, signOf(spec, math.Signbit(v) && !math.IsNaN(v)), "", body)
}

func signOf(spec NumberSpec, negative bool) string {
	switch {
	case negative:
		return "-"
	case spec.has(FlagPlus):
		return "+"
	case spec.has(FlagSpace):
		return " "
	default:
		return ""
	}
}

// appendPadded lays out sign, prefix and body in a field of spec.Width
// characters. Zero padding goes between the prefix and the body.
func appendPadded(dst []byte, spec NumberSpec, sign, prefix, body string) []byte {
	n := len(sign) + len(prefix) + utf8.RuneCountInString(body)
	fill := max(spec.Width-n, 0)

	switch {
	case spec.has(FlagMinus):
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		dst = append(dst, body...)
		dst = appendRepeat(dst, ' ', fill)
	case spec.has(FlagZero):
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		dst = appendRepeat(dst, '0', fill)
		dst = append(dst, body...)
	default:
		dst = appendRepeat(dst, ' ', fill)
		dst = append(dst, sign...)
		dst = append(dst, prefix...)
		dst = append(dst, body...)
	}

	return dst
}

func appendRepeat(dst []byte, b byte, n int) []byte {
	for range n {
		dst = append(dst, b)
	}

	return dst
}

// LocaleNumbers renders integers and fixed-point floats with the digits,
// separators and grouping of a locale. Scientific, general and hex float
// conversions use the POSIX rendering.
//
// A LocaleNumbers is safe for concurrent use.
type LocaleNumbers struct {
	tag language.Tag

	mu      sync.Mutex
	printer *message.Printer
}

var _ NumberFormatter = (*LocaleNumbers)(nil)

// NewLocaleNumbers creates a formatter for the given locale.
func NewLocaleNumbers(tag language.Tag) *LocaleNumbers {
	return &LocaleNumbers{tag: tag, printer: message.NewPrinter(tag)}
}

// Tag returns the locale.
func (l *LocaleNumbers) Tag() language.Tag {
	return l.tag
}

func (l *LocaleNumbers) sprint(v any, opts []number.Option) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.printer.Sprint(number.Decimal(v, opts...))
}

func groupingOption(spec NumberSpec, opts []number.Option) []number.Option {
	if !spec.has(FlagGrouping) {
		opts = append(opts, number.NoSeparator())
	}

	return opts
}

// AppendInt implements NumberFormatter.
func (l *LocaleNumbers) AppendInt(dst []byte, spec NumberSpec, v int64) []byte {
	mag := uint64(v)
	if v < 0 {
		mag = -mag
	}

	return l.appendInteger(dst, spec, mag, signOf(spec, v < 0))
}

// AppendUint implements NumberFormatter.
func (l *LocaleNumbers) AppendUint(dst []byte, spec NumberSpec, v uint64) []byte {
	return l.appendInteger(dst, spec, v, "")
}

func (l *LocaleNumbers) appendInteger(dst []byte, spec NumberSpec, mag uint64, sign string) []byte {
	var opts []number.Option
	if spec.Precision >= 0 {
		if spec.Precision == 0 && mag == 0 {
			return appendPadded(dst, spec, sign, "", "")
		}
		opts = append(opts, number.MinIntegerDigits(spec.Precision))
		spec.Flags &^= FlagZero
	}
	body := l.sprint(mag, groupingOption(spec, opts))

	return appendPadded(dst, spec, sign, "", body)
}

// AppendFloat implements NumberFormatter.
func (l *LocaleNumbers) AppendFloat(dst []byte, spec NumberSpec, v float64) []byte {
	if spec.Verb != 'f' && spec.Verb != 'F' {
		return POSIXNumbers{}.AppendFloat(dst, spec, v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return appendNonFinite(dst, spec, v)
	}

	prec := spec.Precision
	if prec < 0 {
		prec = 6
	}
	opts := []number.Option{number.MinFractionDigits(prec), number.MaxFractionDigits(prec)}
	body := l.sprint(math.Abs(v), groupingOption(spec, opts))

	return appendPadded(dst, spec, signOf(spec, math.Signbit(v)), "", body)
}
