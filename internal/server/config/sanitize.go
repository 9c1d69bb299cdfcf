// Package config defines the server configuration structure.
package config

import (
	"fmt"
	"strings"
)

// Warning describes a configuration value that was replaced by its default.
type Warning struct {
	// Field is the configuration key that was invalid.
	Field string
	// Reason describes why the value was rejected.
	Reason string
	// Fallback is the value used instead.
	Fallback any
}

// String renders the warning for logging.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s, using %v", w.Field, w.Reason, w.Fallback)
}

// Sanitize normalizes the configuration in place, replacing invalid values
// with defaults. It returns one warning per replaced field and never fails:
// each field is checked independently, so an invalid port cannot affect the
// host or environment.
func Sanitize(cfg *Config) []Warning {
	var warnings []Warning

	cfg.Server.Host = strings.TrimSpace(cfg.Server.Host)
	if cfg.Server.Host == "" {
		warnings = append(warnings, Warning{"server.host", "empty after trimming", DefaultHost})
		cfg.Server.Host = DefaultHost
	}

	if cfg.Server.Port < MinPort || cfg.Server.Port > MaxPort {
		warnings = append(warnings, Warning{
			"server.port",
			fmt.Sprintf("%d outside [%d, %d]", cfg.Server.Port, MinPort, MaxPort),
			DefaultPort,
		})
		cfg.Server.Port = DefaultPort
	}

	cfg.Env = strings.TrimSpace(cfg.Env)
	if cfg.Env == "" {
		warnings = append(warnings, Warning{"env", "empty after trimming", DefaultEnv})
		cfg.Env = DefaultEnv
	}

	if cfg.Server.ReadTimeout <= 0 {
		warnings = append(warnings, Warning{"server.read_timeout", "not positive", DefaultReadTimeout})
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.ReadHeaderTimeout <= 0 {
		warnings = append(warnings, Warning{"server.read_header_timeout", "not positive", DefaultReadHeaderTimeout})
		cfg.Server.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		warnings = append(warnings, Warning{"server.write_timeout", "not positive", DefaultWriteTimeout})
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		warnings = append(warnings, Warning{"server.idle_timeout", "not positive", DefaultIdleTimeout})
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		warnings = append(warnings, Warning{"server.shutdown_timeout", "not positive", DefaultShutdownTimeout})
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Server.RateLimit < 0 {
		warnings = append(warnings, Warning{"server.rate_limit", "negative", 0})
		cfg.Server.RateLimit = 0
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		cfg.Log.Level = level
	default:
		warnings = append(warnings, Warning{"log.level", fmt.Sprintf("unknown level %q", cfg.Log.Level), DefaultLogLevel})
		cfg.Log.Level = DefaultLogLevel
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch format {
	case "text", "json":
		cfg.Log.Format = format
	default:
		warnings = append(warnings, Warning{"log.format", fmt.Sprintf("unknown format %q", cfg.Log.Format), DefaultLogFormat})
		cfg.Log.Format = DefaultLogFormat
	}

	return warnings
}
