package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/loopq/internal/clock"
	"github.com/viant/loopq/model/message"
)

// KindInvalidate tags the invalidate sentinel delivered when Invalidate has
// been requested.
const KindInvalidate = ^message.Kind(0)

// PostFlags is reserved for future use; callers should pass zero.
type PostFlags uint32

// Flusher drains buffered outbound calls on the consumer goroutine. The queue
// invokes it immediately before every park so that cross-boundary calls made
// earlier are not left pending while the consumer sleeps. It must not block.
type Flusher func()

// Option customizes a Queue.
type Option func(*Queue)

// WithFlusher sets the pre-park flush hook.
func WithFlusher(f Flusher) Option {
	return func(q *Queue) { q.flush = f }
}

// WithLogger sets the logger used by Dump and diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(q *Queue) { q.logger = logger.With().Str("component", "queue").Logger() }
}

// WithNow overrides the time source.
func WithNow(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// Queue is a timestamp-ordered, single-consumer message queue. Any number of
// goroutines may call Post and Invalidate; exactly one goroutine loops on
// Wait.
type Queue struct {
	mu          sync.Mutex
	pending     orderedList
	invalidated bool

	// sentinel is reused across invalidate cycles; its due time is restamped
	// under the lock each delivery.
	sentinel *message.Message

	// wake holds at most one pending signal; the consumer re-validates queue
	// state after every wakeup, so stale signals are harmless.
	wake chan struct{}

	flush  Flusher
	now    func() time.Time
	logger zerolog.Logger
}

// New returns an empty queue.
func New(options ...Option) *Queue {
	q := &Queue{
		wake:   make(chan struct{}, 1),
		now:    clock.Now,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(q)
	}
	q.sentinel = message.New(KindInvalidate, nil)
	return q
}

// Post schedules m for delivery delay from now. A zero or negative delay
// means as soon as possible. The message becomes visible to a concurrently
// blocked Wait immediately; flags are reserved. Post never fails.
func (q *Queue) Post(m *message.Message, delay time.Duration, flags PostFlags) error {
	q.mu.Lock()
	m.Due = q.now().Add(delay)
	q.pending.insert(m)
	q.mu.Unlock()
	q.signal()
	return nil
}

// Invalidate requests priority delivery of the invalidate sentinel. The next
// Wait returns the sentinel before any timestamped message, overdue ones
// included. Multiple calls before the sentinel is consumed collapse into one.
// Invalidate never fails.
func (q *Queue) Invalidate() error {
	q.mu.Lock()
	q.invalidated = true
	q.mu.Unlock()
	q.signal()
	return nil
}

// Len returns the number of pending messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.len()
}

// Wait blocks until a due message exists, removes it and dispatches it. A
// message whose handler reports Consumed is serviced internally and the wait
// resumes; a message with no handler, or whose handler reports Deliver, is
// returned to the caller.
//
// A negative timeout waits indefinitely. When the timeout budget elapses with
// no due message Wait returns (nil, nil); cancellation of ctx returns
// (nil, ctx.Err()).
func (q *Queue) Wait(ctx context.Context, timeout time.Duration) (*message.Message, error) {
	var deadline time.Time
	hasDeadline := timeout >= 0
	if hasDeadline {
		deadline = q.now().Add(timeout)
	}
	for {
		m, err := q.next(ctx, deadline, hasDeadline)
		if m == nil || err != nil {
			return nil, err
		}
		if m.Handler == nil {
			return m, nil
		}
		// Handlers run with the lock released so they may post or invalidate.
		if m.Handler(ctx, m) == message.Deliver {
			return m, nil
		}
		// Consumed internally; keep waiting.
	}
}

// next blocks until a candidate message is available, the deadline passes or
// ctx is cancelled. The lock is held only while inspecting state, never while
// parked.
func (q *Queue) next(ctx context.Context, deadline time.Time, hasDeadline bool) (*message.Message, error) {
	for {
		q.mu.Lock()
		now := q.now()

		// A pending invalidate preempts every timestamped message, overdue
		// ones included.
		if q.invalidated {
			q.invalidated = false
			q.sentinel.Due = now
			q.mu.Unlock()
			return q.sentinel, nil
		}

		var wakeAt time.Time
		timed := false
		if head := q.pending.head(); head != nil {
			if !head.Due.After(now) {
				q.pending.removeAt(0)
				q.mu.Unlock()
				return head, nil
			}
			if hasDeadline && !deadline.After(now) {
				q.mu.Unlock()
				return nil, nil
			}
			wakeAt = head.Due
			if hasDeadline && deadline.Before(wakeAt) {
				wakeAt = deadline
			}
			timed = true
		} else if hasDeadline {
			if !deadline.After(now) {
				q.mu.Unlock()
				return nil, nil
			}
			wakeAt = deadline
			timed = true
		}
		q.mu.Unlock()

		if q.flush != nil {
			q.flush()
		}
		if err := q.park(ctx, wakeAt.Sub(now), timed); err != nil {
			return nil, err
		}
	}
}

// park suspends the consumer until a signal arrives, d elapses (when timed)
// or ctx is cancelled. A wakeup proves nothing; callers re-check state.
func (q *Queue) park(ctx context.Context, d time.Duration, timed bool) error {
	if !timed {
		select {
		case <-q.wake:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-q.wake:
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// signal wakes the consumer if parked; with a signal already pending it is a
// no-op.
func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
