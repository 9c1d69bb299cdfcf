// Package main implements the greetd server binary.
//
// Usage:
//
//	greetd [--config path/to/greetd.yaml]
//
// Configuration comes from defaults, the optional YAML file, prefixed
// GREETD_* environment variables, and the short aliases PORT, HOST and
// APP_ENV. Invalid values never abort startup; they fall back to
// defaults and are logged as warnings.
package main
