package lifetimer

import (
	"context"
	"log/slog"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/benbjohnson/clock"
)

type Lifetimer interface {
	LifetimerMetrics() (scans, hits, removed int64)
	Close() error
}

// Sweeper drops expired entries in one pass and reports how many were removed.
type Sweeper interface {
	Sweep() int64
	Len() int64
}

// LifetimeWorker sweeps expired entries on a fixed interval,
// so that idle caches do not hold stale values until the next write.
type LifetimeWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.LifetimerCfg
	cache    Sweeper
	logger   *slog.Logger
	ticker   *clock.Ticker
	counters *lifetimerCounters
	done     chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.LifetimerCfg,
	logger *slog.Logger,
	cache Sweeper,
	clk clock.Clock,
) Lifetimer {
	if !cfg.Enabled() {
		return &NoOpLifetimer{}
	}

	ctx, cancel := context.WithCancel(ctx)

	return (&LifetimeWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		cache:    cache,
		logger:   logger,
		ticker:   clk.Ticker(cfg.Interval),
		counters: newLifetimerCounters(),
		done:     make(chan struct{}),
	}).run()
}

func (w *LifetimeWorker) LifetimerMetrics() (scans, hits, removed int64) {
	return w.counters.snapshot()
}

// Close stops the worker and waits for the running scan, if any, to finish.
func (w *LifetimeWorker) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *LifetimeWorker) run() *LifetimeWorker {
	w.logger.Info("lifetimer is running", "interval", w.cfg.Interval.String())

	go func() {
		defer close(w.done)
		defer w.logger.Info("lifetimer is stopped")
		defer w.ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-w.ticker.C:
				w.scan()
			}
		}
	}()

	return w
}

func (w *LifetimeWorker) scan() {
	if w.cache.Len() == 0 {
		return
	}
	w.counters.scans.Add(1)
	if removed := w.cache.Sweep(); removed > 0 {
		w.counters.hits.Add(1)
		w.counters.removed.Add(removed)
	}
}
