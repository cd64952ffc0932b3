package config

// Cache groups configuration of all cache subsystems.
// Optional components are disabled by setting them to nil.
type Cache struct {
	DB DBCfg `yaml:"db"`

	// Compression configures compression of encoded values.
	// If nil, values are always stored uncompressed.
	Compression *CompressionCfg `yaml:"compression"`

	// Metrics configures statistics tracking and their exporters.
	Metrics MetricsCfg `yaml:"metrics"`

	// Eviction configures the background evictor bounding memory usage.
	// If nil, only the entry capacity bounds the cache.
	Eviction *EvictionCfg `yaml:"eviction"`

	// Lifetime configures the background sweeper of expired entries.
	// If nil, expired entries are removed lazily on access and by the periodic sweep on write only.
	Lifetime *LifetimerCfg `yaml:"lifetime"`
}
