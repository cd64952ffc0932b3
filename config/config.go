package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSize               = 1000
	DefaultTTL                   = time.Hour
	DefaultCleanupInterval       = 5 * time.Minute
	DefaultCompressionThreshold  = 1024
	DefaultLatencyDecay          = 0.9
	DefaultTelemetryLogsInterval = 5 * time.Second
	DefaultEvictionCallsPerSec   = 10
	DefaultEvictionBackoffSpins  = 2048
)

// Default returns the configuration used when nothing else is specified.
func Default() *Cache {
	return &Cache{
		DB: DBCfg{
			MaxSize:         DefaultMaxSize,
			DefaultTTL:      DefaultTTL,
			CleanupInterval: DefaultCleanupInterval,
		},
		Compression: &CompressionCfg{
			Threshold: DefaultCompressionThreshold,
			Algo:      CompressionZstd,
		},
		Metrics: MetricsCfg{
			Enabled:               true,
			LatencyDecay:          DefaultLatencyDecay,
			TelemetryLogsInterval: DefaultTelemetryLogsInterval,
		},
	}
}

// AdjustConfig fills zero values which have a meaningful default.
func (cfg *Cache) AdjustConfig() {
	if cfg.DB.CleanupInterval == 0 {
		cfg.DB.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.Compression.Enabled() && cfg.Compression.Algo == "" {
		cfg.Compression.Algo = CompressionZstd
	}
	if cfg.Metrics.Enabled && cfg.Metrics.LatencyDecay == 0 {
		cfg.Metrics.LatencyDecay = DefaultLatencyDecay
	}
	if cfg.Metrics.IsTelemetryLogsEnabled && cfg.Metrics.TelemetryLogsInterval <= 0 {
		cfg.Metrics.TelemetryLogsInterval = DefaultTelemetryLogsInterval
	}
	if cfg.Eviction.Enabled() {
		if cfg.Eviction.CallsPerSec <= 0 {
			cfg.Eviction.CallsPerSec = DefaultEvictionCallsPerSec
		}
		if cfg.Eviction.BackoffSpinsPerCall <= 0 {
			cfg.Eviction.BackoffSpinsPerCall = DefaultEvictionBackoffSpins
		}
	}
}

// Validate reports the first malformed field.
func (cfg *Cache) Validate() error {
	if cfg == nil {
		return errors.New(errors.CodeInvalidConfig, "config is nil")
	}
	if cfg.DB.MaxSize <= 0 {
		return errors.Newf(errors.CodeInvalidConfig, "db.max_size must be positive, got %d", cfg.DB.MaxSize)
	}
	if cfg.DB.DefaultTTL < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "db.default_ttl must not be negative, got %s", cfg.DB.DefaultTTL)
	}
	if cfg.DB.CleanupInterval < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "db.cleanup_interval must not be negative, got %s", cfg.DB.CleanupInterval)
	}
	if cfg.Compression.Enabled() {
		if cfg.Compression.Threshold < 0 {
			return errors.Newf(errors.CodeInvalidConfig, "compression.threshold must not be negative, got %d", cfg.Compression.Threshold)
		}
		switch cfg.Compression.Algo {
		case CompressionZstd, CompressionS2, CompressionFlate:
		default:
			return errors.Newf(errors.CodeInvalidConfig, "compression.algo %q is not supported", cfg.Compression.Algo)
		}
	}
	if cfg.Metrics.LatencyDecay < 0 || cfg.Metrics.LatencyDecay >= 1 {
		return errors.Newf(errors.CodeInvalidConfig, "metrics.latency_decay must be within [0, 1), got %v", cfg.Metrics.LatencyDecay)
	}
	if cfg.Eviction.Enabled() {
		if cfg.Eviction.SoftMemoryLimitBytes <= 0 {
			return errors.Newf(errors.CodeInvalidConfig, "eviction.soft_memory_limit_bytes must be positive, got %d", cfg.Eviction.SoftMemoryLimitBytes)
		}
		if cfg.Eviction.CallsPerSec <= 0 || cfg.Eviction.BackoffSpinsPerCall <= 0 {
			return errors.New(errors.CodeInvalidConfig, "eviction.calls_per_sec and eviction.backoff_spins_per_call must be positive")
		}
	}
	if cfg.Lifetime.Enabled() && cfg.Lifetime.Interval <= 0 {
		return errors.Newf(errors.CodeInvalidConfig, "lifetime.interval must be positive, got %s", cfg.Lifetime.Interval)
	}
	return nil
}

// LoadConfig reads a YAML file on top of Default, so omitted fields keep their defaults.
func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
