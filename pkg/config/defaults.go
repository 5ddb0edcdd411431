package config

import "time"

// Default values applied to unset fields.
const (
	DefaultInputDir           = "data/filtered"
	DefaultOutputDir          = "data/filtered"
	DefaultCompliantSubdir    = "compliant"
	DefaultNonCompliantSubdir = "non_compliant"
	DefaultStoragePath        = "data/verdicts.db"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "console"
	DefaultMetricsNamespace   = "poaudit"
	DefaultWatchDebounce      = 2 * time.Second
)

// DefaultConfig returns a fully defaulted configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Input.Dir == "" {
		cfg.Input.Dir = DefaultInputDir
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.CompliantSubdir == "" {
		cfg.Output.CompliantSubdir = DefaultCompliantSubdir
	}
	if cfg.Output.NonCompliantSubdir == "" {
		cfg.Output.NonCompliantSubdir = DefaultNonCompliantSubdir
	}
	if cfg.Engine.ValueTolerance <= 0 {
		cfg.Engine.ValueTolerance = 0.01
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
