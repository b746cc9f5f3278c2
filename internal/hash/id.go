// Package hash computes the 64-bit content hashes used as intern table keys
// and string table index ids.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Units computes the xxHash64 of UTF-16 content. Units are hashed in
// little-endian byte order regardless of the host so ids are portable.
func Units(units []uint16) uint64 {
	d := xxhash.New()
	var scratch [128]byte
	n := 0
	for _, u := range units {
		scratch[n] = byte(u)
		scratch[n+1] = byte(u >> 8)
		n += 2
		if n == len(scratch) {
			_, _ = d.Write(scratch[:n])
			n = 0
		}
	}
	_, _ = d.Write(scratch[:n])

	return d.Sum64()
}

// ASCIIAsUnits computes the same hash as Units for content stored as 8-bit
// ASCII, so a string hashes identically in either representation.
func ASCIIAsUnits(ascii []byte) uint64 {
	d := xxhash.New()
	var scratch [128]byte
	n := 0
	for _, b := range ascii {
		scratch[n] = b
		scratch[n+1] = 0
		n += 2
		if n == len(scratch) {
			_, _ = d.Write(scratch[:n])
			n = 0
		}
	}
	_, _ = d.Write(scratch[:n])

	return d.Sum64()
}
