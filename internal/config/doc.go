// Package config loads, normalizes, and validates nfcrename configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the NFCRENAME_APP_DIR environment
// override. The application directory anchors the queue, log, and gate lock
// files, so every invocation spawned by the shell agrees on where they live.
//
// Always obtain settings through this package so the gate, queue, and rename
// engine see the same absolute paths and validated limits.
package config
