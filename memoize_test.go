package ashmemo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type invoice struct {
	ID    int
	Total float64
	Lines []string
}

type taxer struct{ rate int }

func (t taxer) Tax(amount int) int { return amount * t.rate / 100 }

func multiplier(k int) func(int) int {
	return func(n int) int { return n * k }
}

type account struct {
	owner   string
	Balance int
}

// TestWrap_CallsOnce computes the result once and serves the rest from cache.
func TestWrap_CallsOnce(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	cube := Wrap(Memoize(WithTTL(30*time.Second), WithCache(c)), func(n int) int {
		calls.Add(1)
		return n * n * n
	})

	require.Equal(t, 1000, cube(10))
	require.Equal(t, 1000, cube(10))
	require.Equal(t, int64(1), calls.Load())

	require.Equal(t, 8, cube(2))
	require.Equal(t, int64(2), calls.Load())
}

// TestWrap_TTL recomputes after the result expired.
func TestWrap_TTL(t *testing.T) {
	c, clk := newTestCache(t, nil)

	var calls atomic.Int64
	double := Wrap(Memoize(WithTTL(time.Second), WithCache(c)), func(n int) int {
		calls.Add(1)
		return n * 2
	})

	double(1)
	clk.Add(500 * time.Millisecond)
	double(1)
	require.Equal(t, int64(1), calls.Load())

	clk.Add(time.Second)
	double(1)
	require.Equal(t, int64(2), calls.Load())
}

// TestWrap_StructResult registers the result type automatically.
func TestWrap_StructResult(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	load := Wrap(Memoize(WithCache(c)), func(id int) invoice {
		calls.Add(1)
		return invoice{ID: id, Total: 12.5, Lines: []string{"bolt", "nut"}}
	})

	first := load(7)
	second := load(7)
	require.Equal(t, first, second)
	require.Equal(t, int64(1), calls.Load())
}

// TestWrap_MapArguments builds the same key regardless of map insertion order.
func TestWrap_MapArguments(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	count := Wrap(Memoize(WithCache(c)), func(filter map[string]any) int {
		calls.Add(1)
		return len(filter)
	})

	a := map[string]any{}
	a["status"] = "open"
	a["owner"] = "ana"
	b := map[string]any{}
	b["owner"] = "ana"
	b["status"] = "open"

	require.Equal(t, 2, count(a))
	require.Equal(t, 2, count(b))
	require.Equal(t, int64(1), calls.Load())
}

// TestWrap2_DistinguishesArguments keys on every argument.
func TestWrap2_DistinguishesArguments(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	join := Wrap2(Memoize(WithCache(c)), func(a, b string) string {
		calls.Add(1)
		return a + "/" + b
	})

	require.Equal(t, "x/y", join("x", "y"))
	require.Equal(t, "y/x", join("y", "x"))
	require.Equal(t, "x/y", join("x", "y"))
	require.Equal(t, int64(2), calls.Load())
}

// TestWrap_KeyFunc uses the caller's key.
func TestWrap_KeyFunc(t *testing.T) {
	c, _ := newTestCache(t, nil)

	byID := Memoize(WithCache(c), WithKeyFunc(func(args ...any) any {
		return "invoice:" + args[0].(invoice).Lines[0]
	}))

	var calls atomic.Int64
	describe := Wrap(byID, func(inv invoice) string {
		calls.Add(1)
		return inv.Lines[0]
	})

	require.Equal(t, "bolt", describe(invoice{ID: 1, Lines: []string{"bolt"}}))
	require.Equal(t, "bolt", describe(invoice{ID: 2, Lines: []string{"bolt"}}))
	require.Equal(t, int64(1), calls.Load())
	require.True(t, c.Exists("invoice:bolt"))
}

// TestWrap_WrongCachedType recomputes when the key holds a value of another type.
func TestWrap_WrongCachedType(t *testing.T) {
	c, _ := newTestCache(t, nil)
	shared := Memoize(WithCache(c), WithKeyFunc(func(args ...any) any { return "shared" }))

	asInt := Wrap(shared, func(n int) int { return n })
	asString := Wrap(shared, func(n int) string { return "computed" })

	require.Equal(t, 5, asInt(5))
	require.Equal(t, "computed", asString(5))
	require.Equal(t, "computed", c.Get("shared", nil))
}

// TestWrapErr_ErrorsNotCached calls again after a failure.
func TestWrapErr_ErrorsNotCached(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	fetch := WrapErr(Memoize(WithCache(c)), func(id string) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("temporary")
		}
		return "value:" + id, nil
	})

	_, err := fetch("a")
	require.Error(t, err)

	v, err := fetch("a")
	require.NoError(t, err)
	require.Equal(t, "value:a", v)

	v, err = fetch("a")
	require.NoError(t, err)
	require.Equal(t, "value:a", v)
	require.Equal(t, int64(2), calls.Load())
}

// TestWrapCtx_IgnoresContext shares results between contexts.
func TestWrapCtx_IgnoresContext(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	lookup := WrapCtx(Memoize(WithCache(c)), func(ctx context.Context, id int) ([]string, error) {
		calls.Add(1)
		return []string{"row"}, ctx.Err()
	})

	ctx1, cancel := context.WithCancel(t.Context())
	defer cancel()

	rows, err := lookup(ctx1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"row"}, rows)

	rows, err = lookup(t.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, []string{"row"}, rows)
	require.Equal(t, int64(1), calls.Load())
}

// TestWrap_CachedNil returns a cached nil result for nillable result types.
func TestWrap_CachedNil(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	find := Wrap(Memoize(WithCache(c)), func(string) any {
		calls.Add(1)
		return nil
	})

	require.Nil(t, find("absent"))
	require.Nil(t, find("absent"))
	require.Equal(t, int64(1), calls.Load())
}

// TestMemoizer_ClearCacheAndInfo clears the whole cache and reports its info.
func TestMemoizer_ClearCacheAndInfo(t *testing.T) {
	c, _ := newTestCache(t, nil)
	m := Memoize(WithCache(c))

	square := Wrap(m, func(n int) int { return n * n })
	square(3)
	c.Put("unrelated", true)

	require.Equal(t, int64(2), m.CacheInfo().Stats.TotalEntries)

	m.ClearCache()
	require.Equal(t, int64(0), c.Len())
	require.Equal(t, int64(0), m.CacheInfo().Stats.TotalEntries)
}

// TestWrap_Concurrent returns consistent results under parallel callers.
func TestWrap_Concurrent(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	square := Wrap(Memoize(WithCache(c)), func(n int) int {
		calls.Add(1)
		return n * n
	})

	var (
		wg    sync.WaitGroup
		wrong atomic.Int64
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if n := i % 10; square(n) != n*n {
					wrong.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	require.Zero(t, wrong.Load())

	// at least once per distinct argument, at most once per caller and argument
	require.GreaterOrEqual(t, calls.Load(), int64(10))
	require.LessOrEqual(t, calls.Load(), int64(80))
}

// TestWrap_MethodValuesAreDistinct keeps results of method values with different receivers apart.
func TestWrap_MethodValuesAreDistinct(t *testing.T) {
	c, _ := newTestCache(t, nil)
	m := Memoize(WithCache(c))

	de := Wrap(m, taxer{rate: 19}.Tax)
	fr := Wrap(m, taxer{rate: 20}.Tax)

	require.Equal(t, 190, de(1000))
	require.Equal(t, 200, fr(1000))
	require.Equal(t, 190, de(1000))
	require.Equal(t, 200, fr(1000))
}

// TestWrap_ClosuresAreDistinct keeps results of closures built from one literal apart.
func TestWrap_ClosuresAreDistinct(t *testing.T) {
	c, _ := newTestCache(t, nil)
	m := Memoize(WithCache(c))

	double := Wrap(m, multiplier(2))
	triple := Wrap(m, multiplier(3))

	require.Equal(t, 20, double(10))
	require.Equal(t, 30, triple(10))
	require.Equal(t, 20, double(10))
	require.Equal(t, 30, triple(10))
	require.Equal(t, int64(2), c.Len())
}

// TestWrap_UncacheableResult recomputes results which would not survive the cache.
func TestWrap_UncacheableResult(t *testing.T) {
	c, _ := newTestCache(t, nil)

	var calls atomic.Int64
	load := Wrap(Memoize(WithCache(c)), func(id int) account {
		calls.Add(1)
		return account{owner: "ana", Balance: id}
	})

	want := account{owner: "ana", Balance: 7}
	require.Equal(t, want, load(7))
	require.Equal(t, want, load(7))
	require.Equal(t, int64(2), calls.Load())
	require.Equal(t, int64(0), c.Len())
}

// TestDefaultMemoKey is stable and depends on the function name and arguments.
func TestDefaultMemoKey(t *testing.T) {
	k1 := defaultMemoKey("pkg.f", []any{1, "a"})
	k2 := defaultMemoKey("pkg.f", []any{1, "a"})
	k3 := defaultMemoKey("pkg.g", []any{1, "a"})
	k4 := defaultMemoKey("pkg.f", []any{int64(1), "a"})

	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, k3)
	require.NotEqual(t, k1, k4)
	require.Regexp(t, `^memo:pkg\.f:[0-9a-f]{32}$`, k1)
}

// TestWrapperName numbers every wrapper of the same function.
func TestWrapperName(t *testing.T) {
	fn := func(n int) int { return n }

	first, second := wrapperName(fn), wrapperName(fn)
	require.NotEqual(t, first, second)
	require.Regexp(t, `^.+\.func\d+#\d+$`, first)
}
