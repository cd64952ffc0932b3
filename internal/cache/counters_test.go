package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestCounters_Hit_MovingAverage blends each sample into the previous average.
func TestCounters_Hit_MovingAverage(t *testing.T) {
	c := newCounters(true, 0.5)

	c.hit(4 * time.Millisecond)
	_, _, _, avg := c.snapshot()
	require.InDelta(t, 2.0, avg, 1e-9)

	c.hit(4 * time.Millisecond)
	_, _, _, avg = c.snapshot()
	require.InDelta(t, 3.0, avg, 1e-9)
}

// TestCounters_Expired counts both a miss and an eviction.
func TestCounters_Expired(t *testing.T) {
	c := newCounters(true, 0.9)

	c.expired()
	c.evicted(3)
	c.evicted(0)

	hits, misses, evictions, _ := c.snapshot()
	require.Equal(t, uint64(0), hits)
	require.Equal(t, uint64(1), misses)
	require.Equal(t, uint64(4), evictions)
}

// TestCounters_Disabled ignores every update.
func TestCounters_Disabled(t *testing.T) {
	c := newCounters(false, 0.9)

	c.hit(time.Millisecond)
	c.miss()
	c.expired()
	c.evicted(5)

	hits, misses, evictions, avg := c.snapshot()
	require.Zero(t, hits)
	require.Zero(t, misses)
	require.Zero(t, evictions)
	require.Zero(t, avg)
}

// TestCounters_Reset zeroes everything.
func TestCounters_Reset(t *testing.T) {
	c := newCounters(true, 0.9)
	c.hit(time.Millisecond)
	c.miss()

	c.reset()

	hits, misses, evictions, avg := c.snapshot()
	require.Zero(t, hits+misses+evictions)
	require.Zero(t, avg)
}
