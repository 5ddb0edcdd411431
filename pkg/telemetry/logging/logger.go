// Package logging configures structured slog output for the toolkit.
//
// Components obtain loggers via slog.Default().With("component", ...);
// Setup installs the configured handler as the process default so every
// component picks it up without wiring.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"infoprom/poaudit/pkg/config"
)

// LogFormat is the log output format.
type LogFormat string

const (
	// FormatJSON outputs one JSON object per record.
	FormatJSON LogFormat = "json"

	// FormatText outputs logfmt-style key=value records.
	FormatText LogFormat = "text"

	// FormatConsole outputs human-readable records without timestamps,
	// suited to interactive batch runs.
	FormatConsole LogFormat = "console"
)

// New builds a logger from the configuration, writing to w (os.Stderr
// when nil).
func New(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	case FormatConsole:
		consoleOpts := *opts
		// Interactive runs have the wall clock; drop the timestamp noise.
		consoleOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
		handler = slog.NewTextHandler(w, &consoleOpts)
	}

	return slog.New(handler), nil
}

// Setup builds a logger from the configuration and installs it as the
// process default.
func Setup(cfg config.LoggingConfig) (*slog.Logger, error) {
	logger, err := New(cfg, nil)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}

// ParseFormat parses a log format name.
func ParseFormat(s string) (LogFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console", "":
		return FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid log format %q", s)
	}
}
