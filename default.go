package ashmemo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Borislavv/go-ash-memo/config"
	"github.com/Borislavv/go-ash-memo/internal/telemetry"
	"github.com/Borislavv/go-ash-memo/model"
)

const (
	// ConfigPathEnv names a YAML file used to configure the default cache.
	ConfigPathEnv = "ASHMEMO_CONFIG"
	// LogLevelEnv sets the level of the default cache logger (debug, info, warn, error).
	LogLevelEnv = "ASHMEMO_LOG_LEVEL"
)

var defaultCache = sync.OnceValue(func() *Cache {
	c, err := newDefault(os.Getenv)
	if err != nil {
		panic(fmt.Sprintf("ashmemo: default cache: %v", err))
	}
	return c
})

// Default returns the process-wide cache, building it on first use.
// It lives until the process exits. An invalid configuration panics.
func Default() *Cache {
	return defaultCache()
}

func newDefault(getenv func(string) string) (*Cache, error) {
	cfg := config.Default()
	if path := getenv(ConfigPathEnv); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	logger := telemetry.NewLogger(os.Stderr, telemetry.ParseLevel(getenv(LogLevelEnv)))
	return New(context.Background(), cfg, logger)
}

func Put(key, value any) bool {
	return Default().Put(key, value)
}

func PutWithTTL(key, value any, ttl time.Duration) bool {
	return Default().PutWithTTL(key, value, ttl)
}

func Get(key, def any) any {
	return Default().Get(key, def)
}

func Delete(key any) bool {
	return Default().Delete(key)
}

func Clear() {
	Default().Clear()
}

func GetStats() model.Stats {
	return Default().Stats()
}
