package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHitRatePercent_NoRequests returns zero when nothing was read.
func TestHitRatePercent_NoRequests(t *testing.T) {
	require.Equal(t, float64(0), HitRatePercent(0, 0))
}

// TestHitRatePercent_Ratio computes hits/(hits+misses)*100.
func TestHitRatePercent_Ratio(t *testing.T) {
	require.InDelta(t, 75.0, HitRatePercent(3, 1), 1e-9)
	require.InDelta(t, 100.0, HitRatePercent(5, 0), 1e-9)
	require.InDelta(t, 0.0, HitRatePercent(0, 7), 1e-9)
}

// TestPerformanceOf_Thresholds checks label boundaries.
func TestPerformanceOf_Thresholds(t *testing.T) {
	tests := []struct {
		rate     float64
		expected Performance
	}{
		{100, PerformanceExcellent},
		{80.1, PerformanceExcellent},
		{80, PerformanceGood},
		{60.5, PerformanceGood},
		{60, PerformanceNeedsAttention},
		{0, PerformanceNeedsAttention},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, PerformanceOf(tt.rate), "rate %v", tt.rate)
	}
}

// TestStats_Requests sums hits and misses.
func TestStats_Requests(t *testing.T) {
	require.Equal(t, uint64(9), Stats{Hits: 4, Misses: 5}.Requests())
}
