package message

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the semantic kind of a message. Values are opaque to the
// queue; hosts define their own enumeration.
type Kind uint32

// Disposition is the outcome of a Handler invocation.
type Disposition int

const (
	// Deliver surfaces the message to the caller of Queue.Wait.
	Deliver Disposition = iota

	// Consumed marks the message as fully serviced inside the wait loop; the
	// queue keeps running without surfacing it to the caller.
	Consumed
)

// Handler optionally services a message inside the queue's own wait loop.
// Handlers run on the consumer goroutine with the queue lock released, so
// they may post further messages or invalidate the queue.
type Handler func(ctx context.Context, m *Message) Disposition

// Message associates an opaque kind and payload with an absolute due time.
// A message with a nil Handler is always handed to the caller of Wait.
type Message struct {
	// ID uniquely identifies the message instance.
	ID string

	// Kind is the semantic tag of the message.
	Kind Kind

	// Data carries an arbitrary payload.
	Data any

	// Handler, when set, is invoked by the wait loop before the message is
	// surfaced; a Consumed result suppresses external delivery.
	Handler Handler

	// Due is the absolute time at which the message becomes eligible for
	// delivery. It is stamped by the owning queue at post time; only the
	// queue that currently holds the message may set it.
	Due time.Time
}

// New returns a message with the given kind and payload.
func New(kind Kind, data any) *Message {
	return &Message{
		ID:   uuid.New().String(),
		Kind: kind,
		Data: data,
	}
}

// NewWithHandler returns a message serviced by the supplied handler.
func NewWithHandler(kind Kind, data any, handler Handler) *Message {
	m := New(kind, data)
	m.Handler = handler
	return m
}
