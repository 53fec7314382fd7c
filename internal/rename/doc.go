// Package rename brings filesystem entry names into Unicode Normalization
// Form C.
//
// The Engine processes one queued job at a time. Single-entry jobs inspect
// only the named path; recursive jobs rename every descendant before the
// directory that contains it, so no child is ever addressed through a stale
// parent path. Names are compared byte-for-byte against their NFC form and
// entries that already match are left untouched.
//
// When the NFC name is taken by another entry, the Resolver picks the first
// free "name (n)" variant in the same directory. Existing entries are never
// overwritten.
package rename
