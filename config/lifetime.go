package config

import "time"

type LifetimerCfg struct {
	// Interval defines how often the background sweeper scans the cache for expired entries.
	// Example: "30s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *LifetimerCfg) Enabled() bool {
	return cfg != nil
}
