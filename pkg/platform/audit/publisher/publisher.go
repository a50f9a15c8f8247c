// Package publisher fans audit events out to a store, either inline or
// through a bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "staffdir/pkg/platform/audit"
	"staffdir/pkg/platform/audit/worker"
	"staffdir/pkg/platform/sentinel"
)

// ErrBufferFull is returned in async mode when the buffer cannot take the
// event without blocking. The event is dropped.
var ErrBufferFull = errors.New("audit buffer full")

const defaultDrainTimeout = 5 * time.Second

// Publisher captures structured audit events.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	bufferSize   int
	drainTimeout time.Duration
	buffer       chan audit.Event
	done         chan struct{}
	cancelWorker context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit enqueue into a buffer of size n instead of
// writing to the store inline.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

// WithDrainTimeout bounds how long Close waits for queued events. Events
// still queued when it expires are dropped.
func WithDrainTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.drainTimeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:        store,
		logger:       slog.New(slog.DiscardHandler),
		drainTimeout: defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.buffer = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())
		p.cancelWorker = cancel
		w := worker.NewWorker(store, p.buffer, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(ctx)
		}()
	}
	return p
}

// Emit records event, stamping it with the current time when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return sentinel.ErrUnavailable
	}
	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.buffer <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events and, in async mode, waits until every queued
// event has been handed to the store or the drain timeout expires. On expiry
// the worker's context is cancelled and Close returns without waiting for a
// store that ignores cancellation. It is safe to call more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.buffer != nil {
		close(p.buffer)
	}
	p.mu.Unlock()

	if p.done == nil {
		return
	}
	timer := time.NewTimer(p.drainTimeout)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.logger.Error("audit drain timed out, dropping queued events",
			"pending", len(p.buffer),
			"timeout", p.drainTimeout.String(),
		)
	}
	p.cancelWorker()
}
