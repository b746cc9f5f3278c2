// Package strtable serializes collections of strings into a compact,
// indexed binary table and reads them back without per-string copies.
//
// A table is laid out as:
//
//	+--------------------+
//	| Header (32 bytes)  |
//	+--------------------+
//	| Index entries      |  16 bytes per string
//	+--------------------+
//	| Data section       |  optionally compressed
//	+--------------------+
//
// Each string is stored once in its narrowest representation: one byte
// per unit when every unit is ASCII, two bytes per unit in the table's
// byte order otherwise. Identical strings share a data block when
// deduplication is enabled (the default).
//
// Index entries carry the xxHash64 of the string's UTF-16 content, so a
// table can answer Lookup without scanning and the decoder can verify
// every string it hands out.
//
// Encoding:
//
//	enc, err := strtable.NewEncoder(strtable.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	for _, name := range names {
//	    if _, err := enc.AddGoString(name); err != nil {
//	        return err
//	    }
//	}
//	data, err := enc.Finish()
//
// Decoding:
//
//	tbl, err := strtable.Decode(data)
//	if err != nil {
//	    return err
//	}
//	for i, s := range tbl.All() {
//	    fmt.Println(i, s)
//	}
//
// Encoders are not safe for concurrent use. A decoded Table is read-only
// and safe for concurrent use.
package strtable
