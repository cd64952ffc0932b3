package ashmemo

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Borislavv/go-ash-memo/internal/cache/db/model"
	"github.com/Borislavv/go-ash-memo/internal/codec"
	publicmodel "github.com/Borislavv/go-ash-memo/model"
)

const memoKeyPrefix = "memo:"

// wrapSeq numbers wrappers. Closures of one literal and method values of one type
// share a function name, so the name alone does not identify a wrapped function.
var wrapSeq atomic.Uint64

// Memoizer caches function results. Build it with Memoize and apply it with Wrap and friends.
//
// Concurrent first calls with the same arguments may all run the function, the last write wins.
type Memoizer struct {
	ttl    time.Duration
	hasTTL bool
	keyFn  func(args ...any) any
	cache  *Cache
}

type MemoOption func(*Memoizer)

// WithTTL overrides the cache default TTL for memoized results.
func WithTTL(ttl time.Duration) MemoOption {
	return func(m *Memoizer) {
		m.ttl, m.hasTTL = ttl, true
	}
}

// WithKeyFunc derives the cache key from the call arguments instead of the default key.
// The returned key is normalized like any other cache key.
func WithKeyFunc(fn func(args ...any) any) MemoOption {
	return func(m *Memoizer) {
		m.keyFn = fn
	}
}

// WithCache stores results in c instead of the process-wide Default cache.
func WithCache(c *Cache) MemoOption {
	return func(m *Memoizer) {
		m.cache = c
	}
}

func Memoize(opts ...MemoOption) *Memoizer {
	m := &Memoizer{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ClearCache drops every entry of the underlying cache, not only the results of one function.
func (m *Memoizer) ClearCache() {
	m.target().Clear()
}

func (m *Memoizer) CacheInfo() publicmodel.Info {
	return m.target().Info()
}

// Wrap memoizes a single argument function.
func Wrap[A, R any](m *Memoizer, fn func(A) R) func(A) R {
	registerResult[R]()
	name := wrapperName(fn)

	return func(a A) R {
		key := m.key(name, a)
		if r, ok := lookup[R](m, key); ok {
			return r
		}
		r := fn(a)
		m.put(key, r)
		return r
	}
}

// Wrap2 memoizes a two argument function.
func Wrap2[A, B, R any](m *Memoizer, fn func(A, B) R) func(A, B) R {
	registerResult[R]()
	name := wrapperName(fn)

	return func(a A, b B) R {
		key := m.key(name, a, b)
		if r, ok := lookup[R](m, key); ok {
			return r
		}
		r := fn(a, b)
		m.put(key, r)
		return r
	}
}

// WrapErr memoizes a fallible function. Results returned together with an error are not cached.
func WrapErr[A, R any](m *Memoizer, fn func(A) (R, error)) func(A) (R, error) {
	registerResult[R]()
	name := wrapperName(fn)

	return func(a A) (R, error) {
		key := m.key(name, a)
		if r, ok := lookup[R](m, key); ok {
			return r, nil
		}
		r, err := fn(a)
		if err != nil {
			return r, err
		}
		m.put(key, r)
		return r, nil
	}
}

// WrapCtx is WrapErr for functions taking a context. The context is not part of the key.
func WrapCtx[A, R any](m *Memoizer, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	registerResult[R]()
	name := wrapperName(fn)

	return func(ctx context.Context, a A) (R, error) {
		key := m.key(name, a)
		if r, ok := lookup[R](m, key); ok {
			return r, nil
		}
		r, err := fn(ctx, a)
		if err != nil {
			return r, err
		}
		m.put(key, r)
		return r, nil
	}
}

/**
 * Private API.
 */

func (m *Memoizer) target() *Cache {
	if m.cache != nil {
		return m.cache
	}
	return Default()
}

func (m *Memoizer) key(name string, args ...any) any {
	if m.keyFn != nil {
		return m.keyFn(args...)
	}
	return defaultMemoKey(name, args)
}

func (m *Memoizer) put(key, value any) {
	if m.hasTTL {
		m.target().PutWithTTL(key, value, m.ttl)
	} else {
		m.target().Put(key, value)
	}
}

// lookup treats a cached value of another dynamic type as a miss.
func lookup[R any](m *Memoizer, key any) (R, bool) {
	var zero R

	v, found := m.target().Lookup(key)
	if !found {
		return zero, false
	}
	if v == nil {
		return zero, isNillable(reflect.TypeFor[R]())
	}
	r, ok := v.(R)
	return r, ok
}

// defaultMemoKey is memo:<wrapper>:<digest of the Go-syntax arguments>.
// %#v prints map keys sorted, so equal arguments always produce the same key.
func defaultMemoKey(name string, args []any) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		_, _ = fmt.Fprintf(&b, "%T(%#v)", arg, arg)
	}
	return memoKeyPrefix + name + ":" + model.HashHex(b.String())
}

// wrapperName is <function name>#<wrapper number>, unique per Wrap call.
func wrapperName(fn any) string {
	return funcName(fn) + "#" + strconv.FormatUint(wrapSeq.Add(1), 10)
}

func funcName(fn any) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return fmt.Sprintf("%p", fn)
}

// registerResult makes R cacheable. A refused type is never stored, so every call recomputes.
func registerResult[R any]() {
	if t := reflect.TypeFor[R](); t.Kind() != reflect.Interface {
		_ = codec.Register(t)
	}
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
