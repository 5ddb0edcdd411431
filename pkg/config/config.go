package config

import "time"

// Config is the root configuration for the poaudit toolkit.
type Config struct {
	// Input configures where category logs are read from.
	Input InputConfig `yaml:"input"`

	// Output configures where partitioned logs and summaries are written.
	Output OutputConfig `yaml:"output"`

	// Engine configures the compliance rule engine.
	Engine EngineConfig `yaml:"engine"`

	// Storage configures the optional verdict database.
	Storage StorageConfig `yaml:"storage"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus collector.
	Metrics MetricsConfig `yaml:"metrics"`

	// Watch configures input-directory watching for continuous runs.
	Watch WatchConfig `yaml:"watch"`

	// Schedule is a cron expression for recurring runs; empty disables
	// scheduling.
	Schedule string `yaml:"schedule"`
}

// InputConfig configures batch input.
type InputConfig struct {
	// Dir is the directory scanned for .xes category logs.
	Dir string `yaml:"dir"`
}

// OutputConfig configures batch output.
type OutputConfig struct {
	// Dir is the root output directory.
	Dir string `yaml:"dir"`

	// CompliantSubdir and NonCompliantSubdir name the partition
	// directories under Dir.
	CompliantSubdir    string `yaml:"compliant_subdir"`
	NonCompliantSubdir string `yaml:"non_compliant_subdir"`

	// PrettyJSON enables indented summary files.
	PrettyJSON bool `yaml:"pretty_json"`
}

// EngineConfig configures the compliance engine.
type EngineConfig struct {
	// ValueTolerance is the absolute tolerance for monetary comparisons.
	ValueTolerance float64 `yaml:"value_tolerance"`

	// Patterns overrides the activity pattern table per group name. Empty
	// groups keep their defaults.
	Patterns map[string][]string `yaml:"patterns"`
}

// StorageConfig configures verdict persistence.
type StorageConfig struct {
	// Enabled turns on verdict persistence.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is the output format: json, text or console.
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Enabled turns on metric recording.
	Enabled bool `yaml:"enabled"`

	// ListenAddress serves /metrics when set and a watch or schedule run
	// keeps the process alive (e.g. ":9090"). Empty disables the
	// endpoint.
	ListenAddress string `yaml:"listen_address"`

	// Namespace and Subsystem prefix every metric name.
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// WatchConfig configures input-directory watching.
type WatchConfig struct {
	// Enabled turns on watching.
	Enabled bool `yaml:"enabled"`

	// Debounce is the quiet period after a file event before a run is
	// triggered, so partially written files are not picked up.
	Debounce time.Duration `yaml:"debounce"`
}
