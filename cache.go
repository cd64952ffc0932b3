// Package ashmemo is an in-process, TTL and size bounded object cache with
// transparent compression, LRU eviction, live statistics and function memoization.
package ashmemo

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/Borislavv/go-ash-memo/internal/cache"
	"github.com/Borislavv/go-ash-memo/internal/evictor"
	"github.com/Borislavv/go-ash-memo/internal/lifetimer"
	"github.com/Borislavv/go-ash-memo/internal/telemetry"
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
)

type AshMemo interface {
	cache.Cacher
	evictor.Evictor
	lifetimer.Lifetimer
	telemetry.Logger
	io.Closer
}

type Cache struct {
	cache.Cacher
	evictor.Evictor
	lifetimer.Lifetimer
	telemetry.Logger
	cls context.CancelFunc
}

var _ AshMemo = (*Cache)(nil)

type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock replaces the wall clock, mostly useful with clock.NewMock in tests.
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clock = clk
		}
	}
}

// New builds a cache and starts its background workers. Cancelling ctx or calling Close stops them.
// A nil logger means a zerolog backed JSON logger on stderr.
func New(ctx context.Context, cfg *config.Cache, logger *slog.Logger, opts ...Option) (*Cache, error) {
	if cfg != nil {
		cfg.AdjustConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = telemetry.NewLogger(os.Stderr, slog.LevelInfo)
	}

	cacher, err := cache.New(cfg, logger, o.clock)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	eviction := evictor.New(ctx, cfg.Eviction, logger, cacher)
	lifetime := lifetimer.New(ctx, cfg.Lifetime, logger, cacher, o.clock)
	telemeter := telemetry.New(ctx, cfg, logger, cacher, eviction, lifetime, o.clock)

	return &Cache{cls: cancel, Cacher: cacher, Evictor: eviction, Lifetimer: lifetime, Logger: telemeter}, nil
}

// Close stops background workers. Stored entries stay readable.
func (c *Cache) Close() error {
	c.cls()
	_ = c.Evictor.Close()
	_ = c.Lifetimer.Close()
	return c.Logger.Close()
}

// PrometheusCollector returns a collector reading this cache's statistics on every scrape.
func (c *Cache) PrometheusCollector(namespace string) prometheus.Collector {
	return telemetry.NewCollector(namespace, c)
}

// RegisterMeter publishes statistics through OpenTelemetry observable instruments.
func (c *Cache) RegisterMeter(meter metric.Meter) (metric.Registration, error) {
	return telemetry.RegisterMeter(meter, c)
}
