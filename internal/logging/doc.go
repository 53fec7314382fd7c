// Package logging assembles the structured slog loggers used by nfcrename.
//
// The console format writes one line per event, beginning with a
// millisecond timestamp and the message, followed by key=value attributes.
// The JSON format emits slog JSON records with the same fields. Log files are
// opened in append mode and written on a best-effort basis: a failed write
// never surfaces to callers, because the tool must finish its renames whether
// or not the log is writable.
//
// Prefer these constructors over hand-rolled slog setup so every process in a
// batch writes the same shape to the same file.
package logging
