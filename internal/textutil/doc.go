// Package textutil provides the name-level text operations used when
// renaming filesystem entries.
//
// The primary use cases are:
//   - Computing the NFC form of an entry name and detecting when it differs
//   - Splitting a file name into stem and extension for collision suffixes
//
// Comparisons are ordinal: two names are equal only when their bytes are.
package textutil
