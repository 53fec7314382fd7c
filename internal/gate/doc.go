// Package gate merges concurrent invocations into one batch.
//
// Every invocation records its jobs in the shared queue. The process that
// wins a non-blocking try-lock on the gate file becomes the leader: it waits
// briefly so sibling invocations started by the same shell action can finish
// enqueuing, drains the queue, and processes each job in order. Losers are
// followers and exit as soon as their jobs are queued. A follower never
// waits on the leader.
package gate
