// Package queue persists pending rename jobs so that independent processes
// started by the shell can hand their work to a single leader.
//
// Every backend offers the same two core operations: Enqueue appends one job
// under exclusive access, and DrainDistinct reads and clears the whole queue
// within one exclusive access, so a concurrent append lands entirely before
// or entirely after a drain. Exclusive access is never waited on
// indefinitely; callers retry a bounded number of times and then give up
// with ErrContention.
//
// The default backend is a UTF-8 text file with one "<F|R>|<base64 path>"
// line per job. SQLite and bbolt backends store the same jobs in an embedded
// database for users who prefer transactional storage. All backends share
// the line codec, corrupt-entry tolerance, and (mode, canonical path)
// de-duplication defined here.
package queue
