// Package queue implements a timestamp-ordered, single-consumer message
// queue. Producers schedule messages with a relative delay; one consumer
// goroutine blocks in Wait until the earliest-due message becomes ready.
// An Invalidate signal always preempts normal scheduling, so a
// "state changed, re-evaluate" request is never starved behind a backlog of
// scheduled messages.
package queue
