// Package config defines the server configuration structure.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration for greetd.
//
// A Config is built once at startup and never mutated afterwards; request
// handling only ever reads it.
type Config struct {
	Server ServerSection `koanf:"server"`
	Env    string        `koanf:"env"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures the HTTP server.
type ServerSection struct {
	// Host is the interface to bind (name or IP).
	Host string `koanf:"host"`

	// Port is the TCP port to bind. Valid range is 1025-65535.
	Port int `koanf:"port"`

	// ReadTimeout bounds reading an entire request, body included.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// ReadHeaderTimeout bounds reading the request headers.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`

	// WriteTimeout bounds writing the response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout bounds how long a keep-alive connection may sit idle.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// ShutdownTimeout bounds the graceful drain on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is the per-client-IP request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// OpsEndpoints registers /healthz and /metrics in the route table.
	OpsEndpoints bool `koanf:"ops_endpoints"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// BaseURL returns the primary endpoint URL for startup logging.
func (c *Config) BaseURL() string {
	return "http://" + c.Addr()
}

// IsDevelopment reports whether the environment mode is a development one.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}
