package loopq

import (
	"github.com/rs/zerolog"
	"github.com/viant/loopq/model/message"
	"github.com/viant/loopq/queue"
)

// Option customizes a Service.
type Option func(s *Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithQueue sets the message queue; by default the service owns a fresh one.
func WithQueue(q *queue.Queue) Option {
	return func(s *Service) { s.queue = q }
}

// WithFlusher sets the pre-park flush hook passed to the owned queue. It is
// ignored when WithQueue supplies a prebuilt queue.
func WithFlusher(f queue.Flusher) Option {
	return func(s *Service) { s.flush = f }
}

// WithDispatcher registers fn as the dispatcher for the given message kind.
func WithDispatcher(kind message.Kind, fn DispatchFunc) Option {
	return func(s *Service) { s.handlers[kind] = fn }
}
