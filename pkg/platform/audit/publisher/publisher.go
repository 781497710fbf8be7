package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "unibus/pkg/platform/audit"
	"unibus/pkg/platform/audit/metrics"
)

// Publisher appends audit entries to a Store. Append never returns an error:
// persistence failures are logged and counted so the calling workflow is
// never aborted by the audit trail.
//
// In sync mode (the default) Append waits for the store, but never longer
// than the write timeout. WithAsyncBuffer switches to a bounded queue drained
// by one goroutine.
type Publisher struct {
	store        audit.Store
	entries      chan audit.Entry
	wg           sync.WaitGroup
	logger       *slog.Logger
	metrics      *metrics.Metrics
	async        bool
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// DefaultWriteTimeout bounds a single store write.
const DefaultWriteTimeout = 2 * time.Second

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables async processing with the specified buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.entries = make(chan audit.Entry, size)
			p.async = true
		}
	}
}

// WithWriteTimeout bounds each store write. Non-positive values keep the default.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.writeTimeout = d
		}
	}
}

// WithLogger sets the operational logger used to report persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the Prometheus metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	if store == nil {
		panic("audit store is required")
	}
	p := &Publisher{store: store, logger: slog.Default(), writeTimeout: DefaultWriteTimeout}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for entry := range p.entries {
		if p.metrics != nil {
			p.metrics.DecQueueDepth()
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		p.persist(ctx, entry)
		cancel()
	}
}

// Append records entry. Its context is detached from cancellation so an
// aborted request still leaves its audit trail.
func (p *Publisher) Append(ctx context.Context, entry audit.Entry) {
	if !p.async {
		p.appendSync(ctx, entry)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.WarnContext(ctx, "audit publisher closed, entry dropped",
			"category", entry.Category,
			"entry_id", entry.ID,
		)
		if p.metrics != nil {
			p.metrics.IncDropped()
		}
		return
	}

	select {
	case p.entries <- entry:
		if p.metrics != nil {
			p.metrics.IncEnqueued()
			p.metrics.IncQueueDepth()
		}
	default:
		p.logger.WarnContext(ctx, "audit buffer full, entry dropped",
			"category", entry.Category,
			"entry_id", entry.ID,
			"request_id", entry.RequestID,
		)
		if p.metrics != nil {
			p.metrics.IncDropped()
		}
	}
}

// appendSync returns once the store answers or the write timeout elapses.
// A store that ignores its context keeps running in the background and its
// eventual result is still logged and counted.
func (p *Publisher) appendSync(ctx context.Context, entry audit.Entry) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.persist(writeCtx, entry)
	}()

	select {
	case <-done:
	case <-writeCtx.Done():
		p.logger.WarnContext(ctx, "audit write timed out, continuing",
			"category", entry.Category,
			"entry_id", entry.ID,
			"request_id", entry.RequestID,
			"timeout", p.writeTimeout,
		)
	}
}

func (p *Publisher) persist(ctx context.Context, entry audit.Entry) {
	start := time.Now()
	err := p.store.Append(ctx, entry)
	if p.metrics != nil {
		p.metrics.ObservePersistDuration(time.Since(start).Seconds())
	}
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to persist audit entry",
			"error", err,
			"category", entry.Category,
			"entry_id", entry.ID,
			"request_id", entry.RequestID,
		)
		if p.metrics != nil {
			p.metrics.IncPersistFail()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.IncPersisted(string(entry.Category), entry.Outcome)
	}
}

// Close stops accepting entries and waits for queued ones to be persisted.
// Safe to call more than once.
func (p *Publisher) Close() {
	if !p.async {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.entries)
	p.mu.Unlock()
	p.wg.Wait()
}
