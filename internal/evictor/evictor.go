package evictor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/Borislavv/go-ash-memo/internal/shared/rate"
	"github.com/dustin/go-humanize"
)

var ErrEvictorNotResponded = errors.New("evictor not responded")

type Evictor interface {
	ForceCall(timeout time.Duration) error
	EvictorMetrics() (scans, overLimit, evictedItems, evictedBytes int64)
	Close() error
}

// Evictable is the part of the cache the evictor works on.
type Evictable interface {
	Len() int64
	Mem() int64
	EvictUntilWithinLimit(limitBytes, maxItems int64) (items, freedBytes int64)
}

// EvictionWorker keeps memory held by encoded values under the soft limit.
type EvictionWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.EvictionCfg
	logger   *slog.Logger
	cache    Evictable
	pacer    *rate.Pacer
	counters *evictorCounters
	invokeCh chan struct{}
	done     chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.EvictionCfg,
	logger *slog.Logger,
	cache Evictable,
) Evictor {
	if !cfg.Enabled() {
		return &NoOpEvictor{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&EvictionWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		cache:    cache,
		pacer:    rate.NewPacer(ctx, cfg.CallsPerSec),
		counters: newEvictorCounters(),
		invokeCh: make(chan struct{}),
		done:     make(chan struct{}),
	}).run()
}

// ForceCall evicts right away instead of waiting for the next scheduled check.
func (w *EvictionWorker) ForceCall(timeout time.Duration) error {
	after := time.NewTimer(timeout)
	defer after.Stop()

	select {
	case <-w.ctx.Done():
	case w.invokeCh <- struct{}{}:
	case <-after.C:
		return ErrEvictorNotResponded
	}
	return nil
}

func (w *EvictionWorker) EvictorMetrics() (scans, overLimit, evictedItems, evictedBytes int64) {
	return w.counters.snapshot()
}

func (w *EvictionWorker) Close() error {
	w.cancel()
	<-w.done
	return nil
}

func (w *EvictionWorker) run() *EvictionWorker {
	w.logger.Info("evictor is running",
		"soft_limit", humanize.IBytes(uint64(w.cfg.SoftMemoryLimitBytes)),
		"calls_per_sec", w.cfg.CallsPerSec,
		"backoff_spins", w.cfg.BackoffSpinsPerCall,
	)

	go func() {
		defer close(w.done)
		defer w.logger.Info("evictor is stopped")

		for {
			select {
			case <-w.ctx.Done():
				return
			case _, ok := <-w.pacer.Chan():
				if !ok {
					return
				}
				w.scan()
			case <-w.invokeCh:
				w.evict()
			}
		}
	}()

	return w
}

// scan checks the memory usage and evicts when the soft limit is exceeded.
func (w *EvictionWorker) scan() {
	if w.cache.Len() == 0 {
		return
	}
	w.counters.scans.Add(1)
	if w.cache.Mem() > w.cfg.SoftMemoryLimitBytes {
		w.counters.overLimit.Add(1)
		w.evict()
	}
}

// evict drops entries until within limit or backoff by spins.
func (w *EvictionWorker) evict() {
	items, freedBytes := w.cache.EvictUntilWithinLimit(w.cfg.SoftMemoryLimitBytes, w.cfg.BackoffSpinsPerCall)
	w.counters.record(items, freedBytes)
}
