// Package config defines the server configuration structure.
package config

import (
	"fmt"
	"strings"
)

// Verify validates a configuration snapshot. A sanitized configuration
// always passes; a failure here means a caller constructed or mutated a
// Config by hand and skipped Sanitize.
func Verify(cfg *Config) error {
	if strings.TrimSpace(cfg.Server.Host) == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	if cfg.Server.Port < MinPort || cfg.Server.Port > MaxPort {
		return fmt.Errorf("server.port %d outside [%d, %d]", cfg.Server.Port, MinPort, MaxPort)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		return fmt.Errorf("env must not be empty")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	return nil
}
