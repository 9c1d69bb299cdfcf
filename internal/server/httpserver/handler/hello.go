// Package handler provides HTTP outcome handlers for greetd.
package handler

import (
	"net/http"

	"github.com/avosk/greetd/internal/server/httpserver/respond"
	"github.com/avosk/greetd/internal/telemetry/logger"
)

// HelloBody is the fixed greeting returned by the success handler.
const HelloBody = "Hello world"

// Hello handles GET /hello. It responds 200 with the fixed greeting
// regardless of query string or headers.
func (s *Set) Hello(w *respond.Writer, r *http.Request) {
	log := logger.L(r.Context())
	log.Info("greeting requested",
		"method", r.Method,
		"path", r.URL.Path,
	)

	if err := w.Send(http.StatusOK, HelloBody, nil); err != nil {
		log.Error("greeting delivery failed", "error", err)
		return
	}

	log.Info("greeting delivered")
}
