package config

import "time"

type MetricsCfg struct {
	// Enabled turns statistics tracking on. When false the cache reports a zeroed snapshot.
	Enabled bool `yaml:"enabled"`

	// LatencyDecay is the weight of the previous average in the access time moving average:
	//
	//   avg = avg*LatencyDecay + sample*(1-LatencyDecay)
	//
	// Must be within [0, 1). Zero is replaced by DefaultLatencyDecay when metrics are enabled.
	// Example: 0.9.
	LatencyDecay float64 `yaml:"latency_decay"`

	// IsTelemetryLogsEnabled enables periodic logging of per-interval statistics.
	IsTelemetryLogsEnabled bool `yaml:"logs_enabled"`

	// TelemetryLogsInterval is the period of telemetry logs. Example: "5s".
	TelemetryLogsInterval time.Duration `yaml:"logs_interval"`
}
