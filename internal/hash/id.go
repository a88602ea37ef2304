// Package hash provides the 64-bit hashes fitview uses for series IDs and
// snapshot checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// SeriesID identifies a column of a named dataset, e.g. "sentiment/terp".
func SeriesID(dataset, column string) uint64 {
	return ID(dataset + "/" + column)
}

// Checksum computes the xxHash64 of a byte payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
