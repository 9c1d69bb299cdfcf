// Package httpserver implements the greetd HTTP server.
//
// The package is organized around three pieces:
//
//   - Server owns the listener and the lifecycle state machine
//     (initializing, binding, listening, draining, stopped, errored).
//   - Router matches requests against an immutable path/method table
//     and dispatches to outcome handlers, synthesizing 404 and 405.
//   - Middleware (Chain, RequestID, RequestLog, RateLimit, Metrics)
//     wraps the router with cross-cutting request handling.
//
// Response construction lives in the respond subpackage and the
// outcome handlers in the handler subpackage.
package httpserver
