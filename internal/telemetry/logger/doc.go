// Package logger provides structured logging for greetd.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: logger construction and level-split output
//   - context.go: context-aware logging with request IDs
//
// Features:
//
//   - Text and JSON output formats
//   - Log level filtering with runtime adjustment
//   - Records below WARN written to stdout, WARN and above to stderr
//   - Context propagation for request tracing
package logger
