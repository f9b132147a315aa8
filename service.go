package loopq

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/viant/loopq/model/message"
	"github.com/viant/loopq/queue"
	"github.com/viant/loopq/tracing"
)

// DispatchFunc handles a message surfaced by the consumer loop.
type DispatchFunc func(ctx context.Context, m *message.Message) error

// Service wires a queue.Queue to a host dispatch table and runs the single
// consumer goroutine. Producers may call Post and Invalidate from any
// goroutine.
type Service struct {
	config *Config
	queue  *queue.Queue
	logger zerolog.Logger
	flush  queue.Flusher

	mu       sync.RWMutex
	handlers map[message.Kind]DispatchFunc

	running *atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a service assembled from the supplied options.
func New(options ...Option) *Service {
	s := &Service{
		config:   DefaultConfig(),
		logger:   zerolog.New(os.Stderr).With().Timestamp().Str("service", "loopq").Logger(),
		handlers: map[message.Kind]DispatchFunc{},
		running:  atomic.NewBool(false),
	}
	for _, option := range options {
		option(s)
	}
	s.init()
	return s
}

// NewFromConfig validates config, initialises tracing when enabled and
// returns a service built on top of it.
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Tracing.Enabled {
		if err := tracing.Init(config.Service.Name, config.Service.Version, config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	return New(append([]Option{WithConfig(config)}, options...)...), nil
}

func (s *Service) init() {
	if s.config.Logging.Level != "" {
		if level, err := zerolog.ParseLevel(s.config.Logging.Level); err == nil {
			s.logger = s.logger.Level(level)
		}
	}
	if s.queue == nil {
		opts := []queue.Option{queue.WithLogger(s.logger)}
		if s.flush != nil {
			opts = append(opts, queue.WithFlusher(s.flush))
		}
		s.queue = queue.New(opts...)
	}
}

// Queue exposes the underlying queue for standalone use and diagnostics.
func (s *Service) Queue() *queue.Queue {
	return s.queue
}

// Register installs fn as the dispatcher for the given message kind,
// replacing any previous registration.
func (s *Service) Register(kind message.Kind, fn DispatchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = fn
}

func (s *Service) handler(kind message.Kind) (DispatchFunc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn, ok := s.handlers[kind]
	return fn, ok
}

// Post schedules m for delivery delay from now; zero or negative delay means
// as soon as possible.
func (s *Service) Post(m *message.Message, delay time.Duration) error {
	return s.queue.Post(m, delay, 0)
}

// Invalidate requests priority delivery of the invalidate sentinel; the
// dispatcher registered for queue.KindInvalidate receives it.
func (s *Service) Invalidate() error {
	return s.queue.Invalidate()
}

// Start launches the consumer goroutine. It fails when the service is
// already running.
func (s *Service) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("service already running")
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)
	return nil
}

// run is the host event loop: it blocks in Wait and dispatches every surfaced
// message to the registered handler.
func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	for {
		m, err := s.queue.Wait(ctx, -1)
		if err != nil {
			s.logger.Debug().Err(err).Msg("consumer stopped")
			return
		}
		if m == nil {
			continue
		}
		s.dispatch(ctx, m)
	}
}

func (s *Service) dispatch(ctx context.Context, m *message.Message) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("loopq.dispatch kind=%d", m.Kind), "CONSUMER")
	span.WithAttributes(map[string]string{"message.id": m.ID})

	fn, ok := s.handler(m.Kind)
	if !ok {
		s.logger.Warn().Uint32("kind", uint32(m.Kind)).Str("id", m.ID).Msg("no dispatcher registered")
		tracing.EndSpan(span, nil)
		return
	}
	err := fn(ctx, m)
	if err != nil {
		s.logger.Error().Err(err).Uint32("kind", uint32(m.Kind)).Str("id", m.ID).Msg("dispatch failed")
	}
	tracing.EndSpan(span, err)
}

// Shutdown stops the consumer goroutine and waits for it to exit. It is a
// no-op when the service is not running.
func (s *Service) Shutdown() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	<-s.done
}
