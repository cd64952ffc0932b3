package model

import "time"

// Stats is a point-in-time snapshot of cache statistics.
type Stats struct {
	Hits                uint64  `json:"hits"`
	Misses              uint64  `json:"misses"`
	Evictions           uint64  `json:"evictions"`
	TotalEntries        int64   `json:"total_entries"`
	MemoryUsageBytes    int64   `json:"memory_usage_bytes"`
	AverageAccessTimeMs float64 `json:"average_access_time_ms"`
	HitRate             float64 `json:"hit_rate"`
}

// Requests is the number of reads observed so far.
func (s Stats) Requests() uint64 { return s.Hits + s.Misses }

// HitRatePercent returns hits/(hits+misses)*100 or 0 when nothing was read yet.
func HitRatePercent(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Performance is a coarse health label derived from the hit rate.
type Performance string

const (
	PerformanceExcellent      Performance = "excellent"
	PerformanceGood           Performance = "good"
	PerformanceNeedsAttention Performance = "needs_attention"
)

func PerformanceOf(hitRate float64) Performance {
	switch {
	case hitRate > 80:
		return PerformanceExcellent
	case hitRate > 60:
		return PerformanceGood
	default:
		return PerformanceNeedsAttention
	}
}

// Info extends Stats with the effective configuration and a health classification.
type Info struct {
	Stats Stats `json:"stats"`

	MaxSize              int           `json:"max_size"`
	DefaultTTL           time.Duration `json:"default_ttl"`
	CompressionThreshold int           `json:"compression_threshold"`

	// Utilization is entries/max_size*100.
	Utilization float64     `json:"utilization"`
	Performance Performance `json:"performance"`
}
