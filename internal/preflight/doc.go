// Package preflight provides readiness checks for the application directory,
// the gate lock, and the job queue.
//
// The CLI "nfcrename status" command runs RunAll and prints one line per
// result. Checks never modify state: the gate check releases the lock at
// once and the queue is read without draining.
package preflight
