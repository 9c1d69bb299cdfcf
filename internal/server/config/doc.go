// Package config provides server configuration for greetd.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: Config struct definition
//   - default.go: default configuration values
//   - load.go: snapshot assembly (defaults, file, environment)
//   - sanitize.go: per-field normalization with default fallback
//   - verify.go: invariant assertions for sanitized snapshots
//
// Configuration sources are merged via internal/infra/confloader with
// priority: short env aliases (PORT, HOST, APP_ENV) > GREETD_* environment
// variables > YAML file > defaults. Loading is total: invalid values are
// replaced by defaults and surfaced as warnings for the caller to log.
package config
