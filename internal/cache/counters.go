package cache

import "time"

// counters are guarded by the cache lock.
type counters struct {
	enabled   bool
	decay     float64 // weight of the previous average
	hits      uint64
	misses    uint64
	evictions uint64
	avgAccess float64 // moving average, milliseconds
}

func newCounters(enabled bool, decay float64) *counters {
	return &counters{enabled: enabled, decay: decay}
}

func (c *counters) hit(elapsed time.Duration) {
	if !c.enabled {
		return
	}
	c.hits++
	sample := float64(elapsed) / float64(time.Millisecond)
	c.avgAccess = c.avgAccess*c.decay + sample*(1-c.decay)
}

func (c *counters) miss() {
	if c.enabled {
		c.misses++
	}
}

// expired accounts an entry which was found stale by a read.
func (c *counters) expired() {
	if c.enabled {
		c.misses++
		c.evictions++
	}
}

func (c *counters) evicted(n int64) {
	if c.enabled && n > 0 {
		c.evictions += uint64(n)
	}
}

func (c *counters) reset() {
	c.hits, c.misses, c.evictions = 0, 0, 0
	c.avgAccess = 0
}

func (c *counters) snapshot() (hits, misses, evictions uint64, avgAccessMs float64) {
	return c.hits, c.misses, c.evictions, c.avgAccess
}
