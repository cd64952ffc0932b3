package evictor

import "sync/atomic"

type evictorCounters struct {
	scans        atomic.Int64 // memory checks
	overLimit    atomic.Int64 // checks which found memory above the soft limit
	evictedItems atomic.Int64
	evictedBytes atomic.Int64
}

func newEvictorCounters() *evictorCounters {
	return &evictorCounters{}
}

func (c *evictorCounters) record(items, freedBytes int64) {
	if items > 0 {
		c.evictedItems.Add(items)
		c.evictedBytes.Add(freedBytes)
	}
}

func (c *evictorCounters) snapshot() (scans, overLimit, evictedItems, evictedBytes int64) {
	return c.scans.Load(), c.overLimit.Load(), c.evictedItems.Load(), c.evictedBytes.Load()
}
