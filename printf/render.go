package printf

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/str"
)

const nullText = "(null)"

// renderer holds the state of one render pass.
type renderer struct {
	f      *Formatter
	out    *str.MutableString
	values []argValue
	num    []byte
}

func (v argValue) asInt() int64 {
	switch v.kind {
	case ArgFloat:
		return int64(v.f)
	case ArgPointer:
		i, _ := intOf(v.p)
		return i
	default:
		return v.i
	}
}

func (v argValue) asUint() uint64 {
	switch v.kind {
	case ArgInt:
		return v.u
	default:
		return uint64(v.asInt())
	}
}

func (v argValue) asFloat() float64 {
	switch v.kind {
	case ArgInt:
		return float64(v.i)
	case ArgPointer:
		return floatOf(v.p)
	default:
		return v.f
	}
}

func (v argValue) asAny() any {
	switch v.kind {
	case ArgInt:
		return v.i
	case ArgFloat:
		return v.f
	default:
		return v.p
	}
}

func (r *renderer) value(slot int) argValue {
	if slot < 0 || slot >= len(r.values) {
		return argValue{}
	}

	return r.values[slot]
}

// render appends the output of one valid specifier.
func (r *renderer) render(sp *fmtSpec) {
	flags, width, prec := sp.flags, sp.width, sp.prec
	if sp.widthSlot >= 0 {
		w := r.value(sp.widthSlot).asInt()
		if w < 0 {
			flags |= FlagMinus
			w = -w
		}
		width = int(min(w, maxNumber))
	}
	if sp.precSlot >= 0 {
		p := r.value(sp.precSlot).asInt()
		prec = -1
		if p >= 0 {
			prec = int(min(p, maxNumber))
		}
	}
	if flags&FlagMinus != 0 {
		flags &^= FlagZero
	}

	spec := NumberSpec{Flags: flags, Width: width, Precision: prec, Verb: byte(sp.conv)}
	v := r.value(sp.valueSlot)
	num := r.num[:0]

	switch sp.category {
	case catPercent:
		r.out.AppendCharacters('%')
		return
	case catSigned:
		spec.Verb = 'd'
		num = r.f.numbers.AppendInt(num, spec, v.asInt())
	case catUnsigned:
		spec.Verb = 'u'
		num = r.f.numbers.AppendUint(num, spec, v.asUint())
	case catHex:
		num = appendRadix(num, spec, v.asUint(), 16, sp.conv == 'X')
	case catOctal:
		num = appendRadix(num, spec, v.asUint(), 8, false)
	case catPointer:
		num = appendPointer(num, spec, v.asAny())
	case catFixed, catScientific, catGeneral:
		num = r.f.numbers.AppendFloat(num, spec, v.asFloat())
	case catHexFloat:
		num = appendHexFloat(num, spec, v.asFloat())
	case catCString:
		r.appendText(r.f.cstringText(v.asAny(), prec), width, -1, flags)
		return
	case catUnicodeString:
		r.appendText(unicodeText(v.asAny(), prec), width, -1, flags)
		return
	case catChar:
		r.appendText(str.CreateWithCharacters([]uint16{uint16(uint8(v.asInt()))}), width, -1, flags)
		return
	case catUnicodeChar:
		r.appendText(str.CreateWithCharacters(charUnits(v.asUint())), width, -1, flags)
		return
	case catObject:
		r.appendText(r.f.describeValue(v.asAny()), width, prec, flags)
		return
	case catCount:
		storeCount(v.asAny(), r.out.Len())
		return
	}

	r.num = num
	r.out.AppendUTF8(num)
}

// appendText appends at most prec units of t, space padded to width.
func (r *renderer) appendText(t str.Text, width, prec int, flags Flags) {
	n := t.Len()
	if prec >= 0 && prec < n {
		n = prec
	}
	fill := max(width-n, 0)

	if flags&FlagMinus == 0 {
		r.appendSpaces(fill)
	}
	r.out.AppendCharacters(str.Units(t, str.Whole(n))...)
	if flags&FlagMinus != 0 {
		r.appendSpaces(fill)
	}
}

func (r *renderer) appendSpaces(n int) {
	for range n {
		r.out.AppendCharacters(' ')
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

// cstringText converts a %s argument. Byte slices stop at the first NUL and
// at prec bytes, then decode with the C-string encoding; other values are
// cut to prec units.
func (f *Formatter) cstringText(v any, prec int) str.Text {
	if b, ok := v.([]byte); ok && b != nil {
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		if prec >= 0 && prec < len(b) {
			b = b[:prec]
		}
		s, err := str.Create(b, f.cstring, false)
		if err != nil {
			logging.L("printf").Debug("c string not valid in its encoding, reading as Latin-1",
				"encoding", f.cstring.String(), "error", err)
			s, _ = str.Create(b, format.EncodingLatin1, false)
		}

		return s
	}

	return limit(textOf(v), prec)
}

// unicodeText converts a %S argument. UTF-16 slices stop at the first NUL.
func unicodeText(v any, prec int) str.Text {
	if u, ok := v.([]uint16); ok && u != nil {
		for i, c := range u {
			if c == 0 {
				u = u[:i]
				break
			}
		}

		return limit(str.CreateWithCharacters(u), prec)
	}

	return limit(textOf(v), prec)
}

func limit(t str.Text, prec int) str.Text {
	if prec < 0 || prec >= t.Len() {
		return t
	}

	return str.CreateWithCharacters(str.Units(t, str.Whole(prec)))
}

// textOf renders any value as text.
func textOf(v any) str.Text {
	if isNil(v) {
		return str.FromGoString(nullText)
	}

	switch x := v.(type) {
	case str.Text:
		return x
	case string:
		return str.FromGoString(x)
	case []uint16:
		return str.CreateWithCharacters(x)
	case []byte:
		return str.FromGoString(string(x))
	case fmt.Stringer:
		return str.FromGoString(x.String())
	case error:
		return str.FromGoString(x.Error())
	default:
		return str.FromGoString(fmt.Sprint(x))
	}
}

// describeValue renders a %@ argument through the describe callback,
// falling back to textOf.
func (f *Formatter) describeValue(v any) str.Text {
	if f.describe != nil && !isNil(v) {
		if t := f.describe(v, f.context); t != nil && !isNil(t) {
			return t
		}
		logging.L("printf").Debug("describe returned no text", "type", fmt.Sprintf("%T", v))
	}

	return textOf(v)
}

// charUnits returns the units of a %C argument. Values above the BMP
// become a surrogate pair.
func charUnits(c uint64) []uint16 {
	if c > 0xFFFF && c <= 0x10FFFF {
		c -= 0x10000
		return []uint16{uint16(0xD800 + c>>10), uint16(0xDC00 + c&0x3FF)}
	}

	return []uint16{uint16(c)}
}

// storeCount writes n through a %n argument.
func storeCount(v any, n int) {
	switch p := v.(type) {
	case *int:
		if p != nil {
			*p = n
		}
	case *int64:
		if p != nil {
			*p = int64(n)
		}
	case *int32:
		if p != nil {
			*p = int32(n)
		}
	}
}

// appendRadix renders an unsigned hex or octal conversion. Precision is the
// minimum number of digits.
func appendRadix(dst []byte, spec NumberSpec, u uint64, base int, upper bool) []byte {
	digits := strconv.FormatUint(u, base)
	if spec.Precision == 0 && u == 0 {
		digits = ""
	}
	if upper {
		digits = strings.ToUpper(digits)
	}
	if pad := spec.Precision - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	var prefix string
	if spec.has(FlagAlternate) {
		switch {
		case base == 16 && u != 0 && upper:
			prefix = "0X"
		case base == 16 && u != 0:
			prefix = "0x"
		case base == 8 && (digits == "" || digits[0] != '0'):
			digits = "0" + digits
		}
	}
	if spec.Precision >= 0 {
		spec.Flags &^= FlagZero
	}

	return appendPadded(dst, spec, "", prefix, digits)
}

// appendPointer renders %p as 0x followed by the address in hex.
func appendPointer(dst []byte, spec NumberSpec, v any) []byte {
	var addr uint64
	if !isNil(v) {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			addr = uint64(rv.Pointer())
		default:
			_, addr = intOf(v)
		}
	}

	spec.Precision = -1

	return appendPadded(dst, spec, "", "0x", strconv.FormatUint(addr, 16))
}

// appendHexFloat renders %a and %A: a hex mantissa and a binary exponent
// without leading zeros.
func appendHexFloat(dst []byte, spec NumberSpec, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return appendNonFinite(dst, spec, v)
	}

	s := strconv.FormatFloat(math.Abs(v), 'x', spec.Precision, 64)
	body := s[2:]
	if p := strings.IndexByte(body, 'p'); p >= 0 && p+2 < len(body) {
		exp := strings.TrimLeft(body[p+2:], "0")
		if exp == "" {
			exp = "0"
		}
		body = body[:p+2] + exp
	}

	prefix := "0x"
	if spec.Verb == 'A' {
		prefix = "0X"
		body = strings.ToUpper(body)
	}

	return appendPadded(dst, spec, signOf(spec, math.Signbit(v)), prefix, body)
}
