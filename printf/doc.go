// Package printf builds strings from a printf-style format language with
// positional arguments.
//
// # Grammar
//
//	% [argpos '$'] [flags]* [width | '*' [argpos '$']] ['.' (precision | '*' [argpos '$'])] [length] conv
//
// Flags are '-' (left-align), '+' (show sign), ' ' (space for sign), '#'
// (alternate form), '0' (zero-pad) and an apostrophe (digit grouping). Length
// modifiers are hh, h, l, ll, q, L, j, z and t. Conversions:
//
//	d i D      signed decimal
//	u U        unsigned decimal
//	x X        hexadecimal
//	o O        octal
//	p          pointer
//	f F        fixed-point float
//	e E        scientific float
//	g G        general float (scientific outside a fixed window)
//	a A        hexadecimal float
//	s          byte string (decoded with the C-string encoding)
//	S          UTF-16 string
//	c          single byte character
//	C          single UTF-16 unit or code point
//	@          object, rendered by the describe callback
//	n          consumes an argument, stores the output length so far
//	%          a literal percent sign
//
// An explicit position ("%2$s") is 1-based. Positional and sequential
// specifiers may be mixed: sequential ones take the next argument after
// the previous sequential one.
//
// An unknown conversion, or a specifier cut off by the end of the format,
// is copied to the output verbatim and consumes no argument.
//
// # Arguments
//
// Formatting runs in three passes. The first walks the format and records
// one typed slot per argument reference: the value of each conversion and
// each '*' width or precision. The second pulls the arguments, in slot
// order, into a table of tagged values. The third renders each specifier
// from the table. Positional references are
// therefore resolved by indexing, never by re-reading the argument list.
//
// Without a length modifier an integer argument is taken at Go int size;
// hh and h truncate to 8 and 16 bits.
package printf
