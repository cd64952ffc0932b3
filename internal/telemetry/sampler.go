package telemetry

import (
	"github.com/Borislavv/go-ash-memo/internal/cache"
	"github.com/Borislavv/go-ash-memo/internal/evictor"
	"github.com/Borislavv/go-ash-memo/internal/lifetimer"
)

type sampler struct {
	cache     cache.Cacher
	evictor   evictor.Evictor
	lifetimer lifetimer.Lifetimer
}

func newSampler(c cache.Cacher, e evictor.Evictor, lt lifetimer.Lifetimer) sampler {
	return sampler{cache: c, evictor: e, lifetimer: lt}
}

// snapshot holds cumulative counters (monotonic until the cache is cleared).
type snapshot struct {
	hits      uint64
	misses    uint64
	evictions uint64

	softScans        uint64
	softOverLimit    uint64
	softEvictedItems uint64
	softEvictedBytes uint64

	lifetimeScans   uint64
	lifetimeHits    uint64
	lifetimeRemoved uint64
}

func (s sampler) snapshot() snapshot {
	stats := s.cache.Stats()
	softScans, softOverLimit, softItems, softBytes := s.evictor.EvictorMetrics()
	scans, hits, removed := s.lifetimer.LifetimerMetrics()

	return snapshot{
		hits:      stats.Hits,
		misses:    stats.Misses,
		evictions: stats.Evictions,

		softScans:        uint64(max(softScans, 0)),
		softOverLimit:    uint64(max(softOverLimit, 0)),
		softEvictedItems: uint64(max(softItems, 0)),
		softEvictedBytes: uint64(max(softBytes, 0)),

		lifetimeScans:   uint64(max(scans, 0)),
		lifetimeHits:    uint64(max(hits, 0)),
		lifetimeRemoved: uint64(max(removed, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		hits:      delta(prev.hits, cur.hits),
		misses:    delta(prev.misses, cur.misses),
		evictions: delta(prev.evictions, cur.evictions),

		softScans:        delta(prev.softScans, cur.softScans),
		softOverLimit:    delta(prev.softOverLimit, cur.softOverLimit),
		softEvictedItems: delta(prev.softEvictedItems, cur.softEvictedItems),
		softEvictedBytes: delta(prev.softEvictedBytes, cur.softEvictedBytes),

		lifetimeScans:   delta(prev.lifetimeScans, cur.lifetimeScans),
		lifetimeHits:    delta(prev.lifetimeHits, cur.lifetimeHits),
		lifetimeRemoved: delta(prev.lifetimeRemoved, cur.lifetimeRemoved),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
