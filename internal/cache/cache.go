package cache

import (
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/Borislavv/go-ash-memo/internal/cache/db"
	"github.com/Borislavv/go-ash-memo/internal/cache/db/model"
	"github.com/Borislavv/go-ash-memo/internal/codec"
	publicmodel "github.com/Borislavv/go-ash-memo/model"
	"github.com/benbjohnson/clock"
)

type Cacher interface {
	Put(key, value any) bool
	PutWithTTL(key, value any, ttl time.Duration) bool
	Get(key, def any) any
	Lookup(key any) (value any, found bool)
	Delete(key any) bool
	Exists(key any) bool
	Clear()
	Stats() publicmodel.Stats
	Info() publicmodel.Info
	Sweep() int64
	EvictUntilWithinLimit(limitBytes, maxItems int64) (items, freedBytes int64)
	Len() int64
	Mem() int64
}

// Cache is a TTL and size bounded store of encoded values.
// A single mutex serializes every operation; helpers suffixed with Locked expect it to be held.
type Cache struct {
	mu        sync.Mutex
	cfg       *config.Cache
	db        *db.Store
	codec     *codec.Codec
	clock     clock.Clock
	logger    *slog.Logger
	counters  *counters
	lastSweep int64 // unix nano
}

func New(cfg *config.Cache, logger *slog.Logger, clk clock.Clock) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	valueCodec, err := codec.New(cfg.Compression)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Cache{
		cfg:       cfg,
		db:        db.NewStore(cfg.DB.MaxSize),
		codec:     valueCodec,
		clock:     clk,
		logger:    logger,
		counters:  newCounters(cfg.Metrics.Enabled, cfg.Metrics.LatencyDecay),
		lastSweep: clk.Now().UnixNano(),
	}, nil
}

// Put stores value under the configured default TTL.
func (c *Cache) Put(key, value any) bool {
	return c.PutWithTTL(key, value, c.cfg.DB.DefaultTTL)
}

// PutWithTTL stores value for ttl. It returns false when the value cannot be encoded,
// in which case nothing is written.
func (c *Cache) PutWithTTL(key, value any, ttl time.Duration) bool {
	k := model.NewKey(key)

	// encoding is pure, keep it out of the critical section
	payload, err := c.codec.Encode(value)
	if err != nil {
		c.logger.Warn("cache value is not cached: encode failed", "key", k.String(), "type", typeOf(value), "err", err)
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().UnixNano()
	c.sweepIfDueLocked(now)

	if !c.db.Has(k.String()) && c.db.Len() >= int64(c.cfg.DB.MaxSize) {
		c.evictLocked()
	}
	c.db.Set(model.NewEntry(k, payload.Data, payload.Compressed, ttl, now))

	return true
}

// Get returns the cached value or def when the key is absent, expired or unreadable.
func (c *Cache) Get(key, def any) any {
	if value, found := c.Lookup(key); found {
		return value
	}
	return def
}

// Lookup is Get which tells a cached nil apart from a miss.
func (c *Cache) Lookup(key any) (value any, found bool) {
	k := model.NewKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.clock.Now()
	now := start.UnixNano()

	entry, ok := c.db.Get(k.String())
	if !ok || !entry.Key().IsTheSame(k) {
		c.counters.miss()
		return nil, false
	}

	if entry.IsExpired(now) {
		c.db.Remove(k.String())
		c.counters.expired()
		return nil, false
	}

	value, err := c.codec.Decode(codec.Payload{Data: entry.Payload(), Compressed: entry.IsCompressed()})
	if err != nil {
		c.logger.Error("cache entry dropped: decode failed", "key", k.String(), "size", entry.SizeBytes(), "err", err)
		c.db.Remove(k.String())
		c.counters.miss()
		return nil, false
	}

	entry.Touch(now)
	c.db.Touch(k.String())
	c.counters.hit(c.clock.Since(start))

	return value, true
}

// Delete removes the key and reports whether something was removed.
func (c *Cache) Delete(key any) bool {
	k := model.NewKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.db.Get(k.String())
	if !ok || !entry.Key().IsTheSame(k) {
		return false
	}
	c.db.Remove(k.String())
	return true
}

// Exists reports whether a live entry is stored under key. It changes nothing.
func (c *Cache) Exists(key any) bool {
	k := model.NewKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.db.Get(k.String())
	return ok && entry.Key().IsTheSame(k) && !entry.IsExpired(c.clock.Now().UnixNano())
}

// Clear drops every entry and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	freedBytes, items := c.db.Clear()
	c.counters.reset()
	c.lastSweep = c.clock.Now().UnixNano()

	c.logger.Debug("cache cleared", "freed_items", items, "freed_bytes", freedBytes)
}

// Sweep removes every expired entry right now and returns how many were removed.
func (c *Cache) Sweep() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.clock.Now().UnixNano())
}

// EvictUntilWithinLimit drops least recently used entries while memory is above limitBytes.
// At most maxItems entries are dropped by one call.
func (c *Cache) EvictUntilWithinLimit(limitBytes, maxItems int64) (items, freedBytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for items < maxItems && c.db.Mem() > limitBytes {
		victim, ok := c.db.PopLRU()
		if !ok {
			break
		}
		items++
		freedBytes += victim.SizeBytes()
	}
	c.counters.evicted(items)

	return items, freedBytes
}

func (c *Cache) Stats() publicmodel.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.statsLocked()
}

func (c *Cache) Info() publicmodel.Info {
	c.mu.Lock()
	stats := c.statsLocked()
	entries := c.db.Len()
	c.mu.Unlock()

	threshold := -1
	if c.cfg.Compression.Enabled() {
		threshold = c.cfg.Compression.Threshold
	}

	return publicmodel.Info{
		Stats:                stats,
		MaxSize:              c.cfg.DB.MaxSize,
		DefaultTTL:           c.cfg.DB.DefaultTTL,
		CompressionThreshold: threshold,
		Utilization:          float64(entries) / float64(c.cfg.DB.MaxSize) * 100,
		Performance:          publicmodel.PerformanceOf(stats.HitRate),
	}
}

func (c *Cache) Len() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Len()
}

func (c *Cache) Mem() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Mem()
}

/**
 * Private API.
 */

func (c *Cache) statsLocked() publicmodel.Stats {
	if !c.counters.enabled {
		return publicmodel.Stats{}
	}
	hits, misses, evictions, avgAccessMs := c.counters.snapshot()
	return publicmodel.Stats{
		Hits:                hits,
		Misses:              misses,
		Evictions:           evictions,
		TotalEntries:        c.db.Len(),
		MemoryUsageBytes:    c.db.Mem(),
		AverageAccessTimeMs: avgAccessMs,
		HitRate:             publicmodel.HitRatePercent(hits, misses),
	}
}

func (c *Cache) sweepIfDueLocked(now int64) {
	if now-c.lastSweep >= c.cfg.DB.CleanupInterval.Nanoseconds() {
		c.sweepLocked(now)
	}
}

func (c *Cache) sweepLocked(now int64) int64 {
	removed, freedBytes := c.db.Sweep(now)
	c.lastSweep = now
	c.counters.evicted(removed)
	if removed > 0 {
		c.logger.Debug("expired entries swept", "freed_items", removed, "freed_bytes", freedBytes)
	}
	return removed
}

// evictLocked drops the least recently accessed entry, if any.
func (c *Cache) evictLocked() {
	if victim, ok := c.db.PopLRU(); ok {
		c.counters.evicted(1)
		c.logger.Debug("least recently used entry evicted", "key", victim.Key().String(), "access_count", victim.AccessCount())
	}
}

func typeOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
