// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHost = "localhost"
	DefaultPort = 3000
	DefaultEnv  = "development"

	// MinPort is the lowest acceptable listen port (unprivileged range).
	MinPort = 1025
	// MaxPort is the highest acceptable listen port.
	MaxPort = 65535

	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second

	DefaultRateLimit = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default server configuration.
func Default() *Config {
	return &Config{
		Server: ServerSection{
			Host:              DefaultHost,
			Port:              DefaultPort,
			ReadTimeout:       DefaultReadTimeout,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
			RateLimit:         DefaultRateLimit,
			OpsEndpoints:      true,
		},
		Env: DefaultEnv,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
