// Package collate finds and compares ranges of strings through a Collator.
//
// The glue in this package converts string ranges into linear UTF-16
// buffers, hands them to the collator and maps match positions back into
// the coordinates of the original string. The default collator, built on
// golang.org/x/text/collate and golang.org/x/text/search, compares code
// units directly when no option asks for linguistic matching.
package collate
