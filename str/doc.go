// Package str implements the reference-counted Unicode string storage the
// rest of the module builds on.
//
// A String stores its content either as 8-bit ASCII bytes or as UTF-16 code
// units. The representation is picked once, at construction, by scanning
// the input: content that is entirely ASCII is kept as bytes whatever
// encoding it arrived in. Length and indexes are always counted in UTF-16
// code units, so a code point outside the BMP counts as 2 in either form.
//
// MutableString is always UTF-16 and grows through an Allocator. Growth
// allocates exactly the size required unless GrowAmortized is selected.
//
// # Thread Safety
//
// Strings are safe for concurrent reads. A MutableString has a single
// writer: concurrent mutation, or reading while mutating, must be
// synchronized by the caller. The intern table is safe for concurrent use.
package str
