package lifetimer

// NoOpLifetimer is used when background sweeping is disabled.
// Expired entries are then dropped by reads and by the write path sweep only.
type NoOpLifetimer struct{}

// LifetimerMetrics always returns zero values.
func (NoOpLifetimer) LifetimerMetrics() (scans, hits, removed int64) {
	return 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpLifetimer) Close() error {
	return nil
}
