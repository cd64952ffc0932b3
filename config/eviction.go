package config

type EvictionCfg struct {
	// SoftMemoryLimitBytes bounds the bytes held by encoded values. Once exceeded, the background
	// evictor drops least recently used entries until memory is back under the limit.
	// The entry capacity (db.max_size) is enforced regardless and synchronously.
	SoftMemoryLimitBytes int64 `yaml:"soft_memory_limit_bytes"`

	// CallsPerSec defines how many times per second the evictor checks the memory usage.
	CallsPerSec int `yaml:"calls_per_sec"`

	// BackoffSpinsPerCall caps the number of entries evicted by a single call, so the cache lock
	// is never held for long. The total number of entries evicted per second is at most:
	//
	//   CallsPerSec * BackoffSpinsPerCall
	BackoffSpinsPerCall int64 `yaml:"backoff_spins_per_call"`
}

func (cfg *EvictionCfg) Enabled() bool {
	return cfg != nil
}
