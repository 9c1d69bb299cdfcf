// Package handler provides HTTP outcome handlers for greetd.
package handler

import (
	"net/http"

	"github.com/avosk/greetd/internal/server/httpserver/respond"
)

// Health handles GET /healthz.
func (s *Set) Health(w *respond.Writer, r *http.Request) {
	_ = w.Send(http.StatusOK, "ok", nil)
}
