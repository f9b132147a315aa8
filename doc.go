// Package loopq provides a timestamp-ordered, single-consumer message queue
// for event-loop style hosts.
//
// Producers schedule delayed work with Post; a dedicated consumer goroutine
// blocks until the earliest-due message becomes ready and dispatches it. An
// Invalidate signal always preempts normal scheduling so that a "state
// changed, re-evaluate" request is delivered before any timestamped message.
//
// The core primitive lives in the queue sub-package and is usable standalone.
// End-users typically interact with the high-level Service façade exposed by
// the root package:
//
//	srv := loopq.New()
//	srv.Register(kindRedraw, redraw)
//	_ = srv.Start(ctx)
//	_ = srv.Post(message.New(kindRedraw, nil), 16*time.Millisecond)
//
// For more details see the README and individual sub-packages.
package loopq
