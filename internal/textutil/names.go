package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NFC returns name in Unicode Normalization Form C.
func NFC(name string) string {
	return norm.NFC.String(name)
}

// NeedsNFC reports whether name differs from its NFC form. The quick check
// answers most names without allocating.
func NeedsNFC(name string) bool {
	if norm.NFC.IsNormalString(name) {
		return false
	}
	return NFC(name) != name
}

// SplitExt splits a file name into stem and extension at the last dot. A
// name whose only dot is the leading one (".profile") has no extension.
func SplitExt(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
