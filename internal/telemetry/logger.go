package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/Borislavv/go-ash-memo/internal/cache"
	"github.com/Borislavv/go-ash-memo/internal/evictor"
	"github.com/Borislavv/go-ash-memo/internal/lifetimer"
	"github.com/Borislavv/go-ash-memo/model"
	"github.com/benbjohnson/clock"
	"github.com/dustin/go-humanize"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs periodically writes per-interval cache activity.
type Logs struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       *config.Cache
	logger    *slog.Logger
	cache     cache.Cacher
	evictor   evictor.Evictor
	lifetimer lifetimer.Lifetimer
	clock     clock.Clock
	interval  time.Duration
	done      chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.Cache,
	logger *slog.Logger,
	cache cache.Cacher,
	evictor evictor.Evictor,
	lifetimer lifetimer.Lifetimer,
	clk clock.Clock,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		logger:    logger,
		cache:     cache,
		evictor:   evictor,
		lifetimer: lifetimer,
		clock:     clk,
		interval:  cfg.Metrics.TelemetryLogsInterval,
		done:      make(chan struct{}),
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	if !l.cfg.Metrics.Enabled || !l.cfg.Metrics.IsTelemetryLogsEnabled {
		close(l.done)
		return l
	}

	// the ticker must exist before New returns, otherwise early ticks of a mocked clock are lost
	ticker := l.clock.Ticker(l.interval)
	go func() {
		defer close(l.done)
		defer ticker.Stop()
		l.loop(ticker)
	}()

	return l
}

func (l *Logs) loop(ticker *clock.Ticker) {
	maxSize := l.cfg.DB.MaxSize

	var softLimit = "INF"
	if l.cfg.Eviction.Enabled() {
		softLimit = humanize.IBytes(uint64(l.cfg.Eviction.SoftMemoryLimitBytes))
	}

	s := newSampler(l.cache, l.evictor, l.lifetimer)
	prev := s.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}
			memBytes := uint64(max(l.cache.Mem(), 0))
			items := l.cache.Len()

			l.logger.Info("cache_requests",
				append(common,
					"hits", d.hits,
					"misses", d.misses,
					"evictions", d.evictions,
					"hit_rate", humanize.FtoaWithDigits(model.HitRatePercent(d.hits, d.misses), 2),
				)...,
			)

			if l.cfg.Lifetime.Enabled() {
				l.logger.Info("lifetime_manager",
					append(common,
						"scans", d.lifetimeScans,
						"hits", d.lifetimeHits,
						"freed_items", d.lifetimeRemoved,
					)...,
				)
			}

			if l.cfg.Eviction.Enabled() {
				l.logger.Info("soft_evictor",
					append(common,
						"scans", d.softScans,
						"over_limit", d.softOverLimit,
						"freed_items", d.softEvictedItems,
						"freed_bytes", humanize.IBytes(d.softEvictedBytes),
					)...,
				)
			}

			l.logger.Info("storage",
				append(common,
					"size", humanize.IBytes(memBytes),
					"entries", humanize.Comma(items),
					"max_entries", humanize.Comma(int64(maxSize)),
					"soft_limit", softLimit,
				)...,
			)
		}
	}
}
