package queue

import "errors"

// ErrContention reports that exclusive access to the queue could not be
// obtained within the retry budget. The job was not recorded.
var ErrContention = errors.New("queue busy: exclusive access not obtained")

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown queue backend")
