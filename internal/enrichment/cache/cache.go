// Package cache keeps recent valid postal resolutions so repeated admissions
// for the same code skip the network.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"unibus/internal/enrichment/metrics"
	"unibus/internal/enrichment/ports"
	"unibus/internal/sentinel"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Store persists postal resolutions keyed by normalized postal code.
// Find returns sentinel.ErrNotFound on a miss or an expired entry.
type Store interface {
	Find(ctx context.Context, code string) (ports.PostalResolution, error)
	Save(ctx context.Context, code string, res ports.PostalResolution) error
}

// Lookup fronts a PostalLookup with a Store. Only valid resolutions are
// stored, so rejections and outages always reach the upstream service.
type Lookup struct {
	next    ports.PostalLookup
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Lookup)

func WithLogger(l *slog.Logger) Option {
	return func(c *Lookup) {
		c.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Lookup) {
		c.metrics = m
	}
}

func NewLookup(next ports.PostalLookup, store Store, opts ...Option) *Lookup {
	if next == nil {
		panic("cache.NewLookup: postal lookup is required")
	}
	if store == nil {
		panic("cache.NewLookup: store is required")
	}
	c := &Lookup{next: next, store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup serves a cached resolution when present. Cache failures are logged
// and treated as misses.
func (c *Lookup) Lookup(ctx context.Context, code string) ports.PostalResolution {
	res, err := c.store.Find(ctx, code)
	if err == nil {
		c.recordHit()
		return res
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		c.logger.WarnContext(ctx, "postal cache read failed", "error", err)
	}
	c.recordMiss()

	res = c.next.Lookup(ctx, code)
	if !res.Valid {
		return res
	}
	if err := c.store.Save(ctx, code, res); err != nil {
		c.logger.WarnContext(ctx, "postal cache write failed", "error", err)
	}
	return res
}

func (c *Lookup) recordHit() {
	if c.metrics != nil {
		c.metrics.RecordCacheHit()
	}
}

func (c *Lookup) recordMiss() {
	if c.metrics != nil {
		c.metrics.RecordCacheMiss()
	}
}

var _ ports.PostalLookup = (*Lookup)(nil)
