// Package config defines the server configuration structure.
package config

import (
	"os"
	"strconv"

	"github.com/avosk/greetd/internal/infra/confloader"
)

// Short environment variable aliases. These are the documented external
// interface; the prefixed GREETD_* forms handled by confloader cover the
// full key set and are overridden by these when both are present.
const (
	EnvPort = "PORT"
	EnvHost = "HOST"
	EnvMode = "APP_ENV"
)

// Load builds the configuration snapshot from defaults, an optional YAML
// file, and environment variables. It is total: any invalid or missing
// value falls back to its default and is reported as a Warning, never as
// an error. path may be empty.
func Load(path string) (*Config, []Warning) {
	cfg := Default()
	var warnings []Warning

	opts := []confloader.Option{}
	if path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	// Unmarshal into a copy so a malformed source cannot leave the
	// snapshot half-applied.
	candidate := *cfg
	if err := loader.Load(&candidate); err != nil {
		warnings = append(warnings, Warning{"config", err.Error(), "defaults"})
	} else {
		*cfg = candidate
	}

	warnings = append(warnings, applyEnvAliases(cfg)...)
	warnings = append(warnings, Sanitize(cfg)...)

	return cfg, warnings
}

// applyEnvAliases reads the short-form environment variables into cfg.
// Each variable is handled independently; a malformed value yields a
// warning and leaves the field untouched.
func applyEnvAliases(cfg *Config) []Warning {
	var warnings []Warning

	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			warnings = append(warnings, Warning{"server.port", "PORT is not a number: " + strconv.Quote(v), cfg.Server.Port})
		} else {
			cfg.Server.Port = port
		}
	}

	if v, ok := os.LookupEnv(EnvHost); ok {
		cfg.Server.Host = v
	}

	if v, ok := os.LookupEnv(EnvMode); ok {
		cfg.Env = v
	}

	return warnings
}
