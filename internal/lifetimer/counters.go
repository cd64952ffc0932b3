package lifetimer

import "sync/atomic"

type lifetimerCounters struct {
	scans   atomic.Int64 // total scans number
	hits    atomic.Int64 // scans which removed at least one entry
	removed atomic.Int64 // expired entries removed
}

func newLifetimerCounters() *lifetimerCounters {
	return &lifetimerCounters{
		scans:   atomic.Int64{},
		hits:    atomic.Int64{},
		removed: atomic.Int64{},
	}
}

func (c *lifetimerCounters) snapshot() (scans, hits, removed int64) {
	scans = c.scans.Load()
	hits = c.hits.Load()
	removed = c.removed.Load()
	return
}
