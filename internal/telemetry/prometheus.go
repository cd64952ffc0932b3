package telemetry

import (
	"github.com/Borislavv/go-ash-memo/model"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything able to report a statistics snapshot.
type StatsSource interface {
	Stats() model.Stats
}

// Collector exposes cache statistics to a prometheus registry.
// Values are read at scrape time, nothing is recorded on the hot path.
type Collector struct {
	src StatsSource

	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	entries   *prometheus.Desc
	memory    *prometheus.Desc
	access    *prometheus.Desc
	hitRate   *prometheus.Desc
}

func NewCollector(namespace string, src StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", name), help, nil, nil)
	}
	return &Collector{
		src:       src,
		hits:      desc("hits_total", "Reads served from the cache."),
		misses:    desc("misses_total", "Reads which found nothing usable."),
		evictions: desc("evictions_total", "Entries removed by expiry or by the size bound."),
		entries:   desc("entries", "Entries currently stored."),
		memory:    desc("memory_bytes", "Bytes held by encoded values."),
		access:    desc("access_time_ms", "Moving average of a successful read in milliseconds."),
		hitRate:   desc("hit_rate_percent", "Hits over all reads in percent."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.entries
	ch <- c.memory
	ch <- c.access
	ch <- c.hitRate
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	// counters go back to zero on Clear, prometheus rate() treats that as a reset
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.TotalEntries))
	ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, float64(s.MemoryUsageBytes))
	ch <- prometheus.MustNewConstMetric(c.access, prometheus.GaugeValue, s.AverageAccessTimeMs)
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, s.HitRate)
}
