// Package watch turns filesystem notifications into rename jobs.
//
// New entries whose names are not in NFC are collected by a Debouncer and
// handed over as one batch once the directory has been quiet for the
// debounce period. The batch goes through the same gate as shell
// invocations, so watcher batches and shell batches never run at once.
package watch
