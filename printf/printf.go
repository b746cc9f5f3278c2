package printf

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/arloliu/ustring/cursor"
	"github.com/arloliu/ustring/errs"
	"github.com/arloliu/ustring/format"
	"github.com/arloliu/ustring/internal/logging"
	"github.com/arloliu/ustring/internal/options"
	"github.com/arloliu/ustring/internal/pool"
	"github.com/arloliu/ustring/str"
	"github.com/arloliu/ustring/transcode"
)

// DescribeFunc renders a %@ argument. ctx is the formatter's context value.
// Returning nil falls back to the default rendering.
type DescribeFunc func(value any, ctx any) str.Text

// Formatter formats strings. A Formatter is immutable after New and safe
// for concurrent use.
type Formatter struct {
	locale   language.Tag
	numbers  NumberFormatter
	describe DescribeFunc
	context  any
	cstring  format.Encoding
}

// Option configures a Formatter.
type Option = options.Option[*Formatter]

// WithLocale renders decimal numbers with the conventions of tag.
func WithLocale(tag language.Tag) Option {
	return options.NoError(func(f *Formatter) {
		f.locale = tag
		f.numbers = NewLocaleNumbers(tag)
	})
}

// WithNumberFormatter replaces the decimal number renderer.
func WithNumberFormatter(nf NumberFormatter) Option {
	return options.New(func(f *Formatter) error {
		if nf == nil {
			return fmt.Errorf("printf: nil number formatter")
		}
		f.numbers = nf

		return nil
	})
}

// WithDescriber sets the callback that renders %@ arguments.
func WithDescriber(fn DescribeFunc) Option {
	return options.NoError(func(f *Formatter) {
		f.describe = fn
	})
}

// WithContext sets the value passed to the describe callback.
func WithContext(ctx any) Option {
	return options.NoError(func(f *Formatter) {
		f.context = ctx
	})
}

// WithCStringEncoding sets the encoding %s byte slices are decoded with.
// The default is UTF-8.
func WithCStringEncoding(enc format.Encoding) Option {
	return options.New(func(f *Formatter) error {
		if !transcode.Supported(enc) {
			return fmt.Errorf("%w: C-string encoding %s", errs.ErrUnsupportedEncoding, enc)
		}
		f.cstring = enc

		return nil
	})
}

// New creates a Formatter. Without options numbers use POSIX conventions
// and %s byte slices are decoded as UTF-8.
func New(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		locale:  language.Und,
		numbers: POSIXNumbers{},
		cstring: format.EncodingUTF8,
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}

	return f, nil
}

// Locale returns the locale numbers are rendered with.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

var defaultFormatter = &Formatter{
	locale:  language.Und,
	numbers: POSIXNumbers{},
	cstring: format.EncodingUTF8,
}

// Format formats args according to the Go string fmtStr.
func (f *Formatter) Format(fmtStr string, args ...any) *str.String {
	return f.FormatText(str.FromGoString(fmtStr), args...)
}

// FormatText formats args according to fmtText.
func (f *Formatter) FormatText(fmtText str.Text, args ...any) *str.String {
	out := str.CreateMutable(fmtText.Len(),
		str.WithAllocator(str.PooledAllocator{}),
		str.WithGrowthPolicy(str.GrowAmortized))
	defer out.Release()

	f.AppendFormat(out, fmtText, args...)

	return out.Copy()
}

// Sprintf formats args and returns the result as a Go string.
func (f *Formatter) Sprintf(fmtStr string, args ...any) string {
	return f.Format(fmtStr, args...).String()
}

// AppendFormat formats args according to fmtText and appends the result to
// dst.
func (f *Formatter) AppendFormat(dst *str.MutableString, fmtText str.Text, args ...any) {
	c := cursor.New(fmtText, str.Whole(fmtText.Len()))

	// discover argument slots
	var (
		specs   []fmtSpec
		valid   []bool
		slots   slotTable
		counter slotCounter
	)
	for i := 0; i < c.Len(); i++ {
		if c.At(i) != '%' {
			continue
		}
		sp, ok := parseSpec(c, i)
		if ok {
			assignSlots(&sp, &counter)
			slots.declare(sp.widthSlot, ArgInt, lenNone)
			slots.declare(sp.precSlot, ArgInt, lenNone)
			slots.declare(sp.valueSlot, sp.category.argKind(), sp.length)
		}
		specs = append(specs, sp)
		valid = append(valid, ok)
		i = sp.end - 1
	}

	if len(args) > len(slots.kinds) {
		logging.L("printf").Debug("format has fewer references than arguments",
			"references", len(slots.kinds), "arguments", len(args))
	}

	scratch := pool.GetByteBuffer()
	r := renderer{f: f, out: dst, values: slots.load(args), num: scratch.B[:0]}
	defer func() {
		scratch.B = r.num
		pool.PutByteBuffer(scratch)
	}()

	literal := 0
	for k := range specs {
		sp := &specs[k]
		appendRange(dst, fmtText, literal, sp.start)
		if valid[k] {
			r.render(sp)
		} else {
			appendRange(dst, fmtText, sp.start, sp.end)
		}
		literal = sp.end
	}
	appendRange(dst, fmtText, literal, fmtText.Len())
}

func appendRange(dst *str.MutableString, t str.Text, start, end int) {
	if end > start {
		dst.AppendCharacters(str.Units(t, str.Range{Location: start, Length: end - start})...)
	}
}

// Format formats with the default formatter.
func Format(fmtStr string, args ...any) *str.String {
	return defaultFormatter.Format(fmtStr, args...)
}

// FormatText formats with the default formatter.
func FormatText(fmtText str.Text, args ...any) *str.String {
	return defaultFormatter.FormatText(fmtText, args...)
}

// Sprintf formats with the default formatter and returns a Go string.
func Sprintf(fmtStr string, args ...any) string {
	return defaultFormatter.Sprintf(fmtStr, args...)
}
