package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterMeter publishes cache statistics as asynchronous OpenTelemetry instruments.
// Unregister the returned registration to stop observing.
func RegisterMeter(meter metric.Meter, src StatsSource) (metric.Registration, error) {
	hits, err := meter.Int64ObservableCounter("ashmemo.cache.hits", metric.WithDescription("Reads served from the cache."))
	if err != nil {
		return nil, fmt.Errorf("hits instrument: %w", err)
	}
	misses, err := meter.Int64ObservableCounter("ashmemo.cache.misses", metric.WithDescription("Reads which found nothing usable."))
	if err != nil {
		return nil, fmt.Errorf("misses instrument: %w", err)
	}
	evictions, err := meter.Int64ObservableCounter("ashmemo.cache.evictions", metric.WithDescription("Entries removed by expiry or by the size bound."))
	if err != nil {
		return nil, fmt.Errorf("evictions instrument: %w", err)
	}
	entries, err := meter.Int64ObservableGauge("ashmemo.cache.entries", metric.WithDescription("Entries currently stored."))
	if err != nil {
		return nil, fmt.Errorf("entries instrument: %w", err)
	}
	memory, err := meter.Int64ObservableGauge("ashmemo.cache.memory", metric.WithUnit("By"), metric.WithDescription("Bytes held by encoded values."))
	if err != nil {
		return nil, fmt.Errorf("memory instrument: %w", err)
	}
	access, err := meter.Float64ObservableGauge("ashmemo.cache.access_time", metric.WithUnit("ms"), metric.WithDescription("Moving average of a successful read."))
	if err != nil {
		return nil, fmt.Errorf("access time instrument: %w", err)
	}
	hitRate, err := meter.Float64ObservableGauge("ashmemo.cache.hit_rate", metric.WithUnit("%"), metric.WithDescription("Hits over all reads."))
	if err != nil {
		return nil, fmt.Errorf("hit rate instrument: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := src.Stats()
		o.ObserveInt64(hits, int64(s.Hits))
		o.ObserveInt64(misses, int64(s.Misses))
		o.ObserveInt64(evictions, int64(s.Evictions))
		o.ObserveInt64(entries, s.TotalEntries)
		o.ObserveInt64(memory, s.MemoryUsageBytes)
		o.ObserveFloat64(access, s.AverageAccessTimeMs)
		o.ObserveFloat64(hitRate, s.HitRate)
		return nil
	}, hits, misses, evictions, entries, memory, access, hitRate)
}
