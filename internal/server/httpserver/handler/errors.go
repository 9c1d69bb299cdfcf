// Package handler provides HTTP outcome handlers for greetd.
package handler

import (
	"net/http"
	"strings"

	"github.com/avosk/greetd/internal/server/httpserver/respond"
	"github.com/avosk/greetd/internal/telemetry/logger"
)

// Canonical bodies for the non-success outcomes.
const (
	NotFoundBody         = "Not Found"
	MethodNotAllowedBody = "Method Not Allowed"
	ServerErrorBody      = "Internal Server Error"
)

// NotFound responds 404 for paths with no route entry.
func (s *Set) NotFound(w *respond.Writer, r *http.Request) {
	if err := w.Send(http.StatusNotFound, NotFoundBody, nil); err != nil {
		logger.L(r.Context()).Error("not-found response failed", "error", err)
	}
}

// MethodNotAllowed returns a handler that responds 405 with an Allow
// header listing the methods registered for the matched path. An empty
// list falls back to GET; the route table cannot produce one, so the
// fallback only covers direct misuse of this constructor.
func (s *Set) MethodNotAllowed(allowed []string) Func {
	allow := strings.Join(allowed, ", ")
	if allow == "" {
		allow = http.MethodGet
	}

	return func(w *respond.Writer, r *http.Request) {
		extra := http.Header{}
		extra.Set("Allow", allow)

		if err := w.Send(http.StatusMethodNotAllowed, MethodNotAllowedBody, extra); err != nil {
			logger.L(r.Context()).Error("method-not-allowed response failed", "error", err)
		}
	}
}

// ServerError returns a handler that responds 500. The underlying error
// is logged server-side only; its message never reaches the client. A nil
// err is tolerated.
func (s *Set) ServerError(err error) Func {
	return func(w *respond.Writer, r *http.Request) {
		log := logger.L(r.Context())
		if err != nil {
			log.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
		} else {
			log.Error("request failed with unspecified error",
				"method", r.Method,
				"path", r.URL.Path,
			)
		}

		if sendErr := w.Send(http.StatusInternalServerError, ServerErrorBody, nil); sendErr != nil {
			log.Error("server-error response failed", "error", sendErr)
		}
	}
}
