// Package handler provides HTTP outcome handlers for greetd.
//
// One handler exists per routing outcome:
//
//   - hello.go: the success handler for the greeting endpoint
//   - errors.go: not-found, method-not-allowed and server-error handlers
//   - health.go: liveness probe
//
// All handlers follow the same pattern: build the response through a
// respond.Writer (finalized exactly once) and log through the
// request-scoped logger. Client-visible bodies are fixed strings; internal
// error detail stays in the server log.
package handler
