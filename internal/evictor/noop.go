package evictor

import "time"

// NoOpEvictor is used when no soft memory limit is configured.
type NoOpEvictor struct{}

// ForceCall does nothing and returns nil immediately.
func (NoOpEvictor) ForceCall(time.Duration) error {
	return nil
}

// EvictorMetrics always returns zero values.
func (NoOpEvictor) EvictorMetrics() (scans, overLimit, evictedItems, evictedBytes int64) {
	return 0, 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpEvictor) Close() error {
	return nil
}
