package config

import "time"

type DBCfg struct {
	// MaxSize is the entry capacity. Writing a new key into a full cache evicts
	// the least recently accessed entry first.
	MaxSize int `yaml:"max_size"`

	// DefaultTTL is used when an entry is written without an explicit TTL.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// CleanupInterval is the minimum time between two full sweeps of expired entries.
	// A sweep is triggered by a write once the interval has elapsed.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}
