package telemetry

import (
	"strings"
	"testing"

	"github.com/Borislavv/go-ash-memo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type staticStats struct{ stats model.Stats }

func (s staticStats) Stats() model.Stats { return s.stats }

var sampleStats = model.Stats{
	Hits:                8,
	Misses:              2,
	Evictions:           1,
	TotalEntries:        5,
	MemoryUsageBytes:    2048,
	AverageAccessTimeMs: 0.25,
	HitRate:             80,
}

// TestCollector_Collect exposes every statistic at scrape time.
func TestCollector_Collect(t *testing.T) {
	c := NewCollector("app", staticStats{stats: sampleStats})

	require.Equal(t, 7, testutil.CollectAndCount(c))

	expected := `
# HELP app_cache_hits_total Reads served from the cache.
# TYPE app_cache_hits_total counter
app_cache_hits_total 8
# HELP app_cache_memory_bytes Bytes held by encoded values.
# TYPE app_cache_memory_bytes gauge
app_cache_memory_bytes 2048
# HELP app_cache_hit_rate_percent Hits over all reads in percent.
# TYPE app_cache_hit_rate_percent gauge
app_cache_hit_rate_percent 80
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"app_cache_hits_total", "app_cache_memory_bytes", "app_cache_hit_rate_percent"))
}

// TestCollector_Register passes registry consistency checks.
func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector("app", staticStats{stats: sampleStats})))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)
}
