// Package handler provides HTTP outcome handlers for greetd.
package handler

import (
	"net/http"

	"github.com/avosk/greetd/internal/server/httpserver/respond"
	"github.com/avosk/greetd/internal/telemetry/logger"
)

// Func produces a complete HTTP response for one routing outcome.
// The respond.Writer is owned by this invocation; implementations
// finalize it exactly once.
type Func func(w *respond.Writer, r *http.Request)

// Set bundles the outcome handlers with their logger.
type Set struct {
	log logger.Logger
}

// New creates a handler set.
func New(log logger.Logger) *Set {
	if log == nil {
		log = logger.Default()
	}
	return &Set{log: log}
}

// Passthrough adapts a plain http.Handler (e.g. the Prometheus exporter)
// to a Func. The wrapped handler streams its own response, so the
// respond.Writer is finalized by delegation.
func (s *Set) Passthrough(h http.Handler) Func {
	return func(w *respond.Writer, r *http.Request) {
		h.ServeHTTP(w.Delegate(), r)
	}
}
