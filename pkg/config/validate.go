package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true, "console": true}
)

// Validate checks the configuration for inconsistencies. It is called by
// the loaders after defaults and overrides are applied.
func Validate(cfg *Config) error {
	if cfg.Input.Dir == "" {
		return fmt.Errorf("input.dir must not be empty")
	}
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if cfg.Output.CompliantSubdir == cfg.Output.NonCompliantSubdir {
		return fmt.Errorf("output.compliant_subdir and output.non_compliant_subdir must differ")
	}
	if cfg.Engine.ValueTolerance <= 0 {
		return fmt.Errorf("engine.value_tolerance must be positive, got %v", cfg.Engine.ValueTolerance)
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be one of json, text, console; got %q", cfg.Logging.Format)
	}
	if cfg.Storage.Enabled && cfg.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty when storage is enabled")
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return fmt.Errorf("schedule is not a valid cron expression: %w", err)
		}
	}
	if cfg.Watch.Enabled && cfg.Watch.Debounce <= 0 {
		return fmt.Errorf("watch.debounce must be positive when watching is enabled")
	}
	return nil
}
