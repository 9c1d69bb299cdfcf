// Package httpserver implements the greetd HTTP server.
package httpserver

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/avosk/greetd/internal/server/httpserver/handler"
	"github.com/avosk/greetd/internal/server/httpserver/respond"
	"github.com/avosk/greetd/internal/telemetry/logger"
)

// Route declares one path/method/handler entry of the route table.
type Route struct {
	Path    string
	Method  string
	Handler handler.Func
}

// Router matches requests against an immutable route table and dispatches
// to a handler, synthesizing 404/405 outcomes for misses. The table is
// built once at construction and never mutated, so concurrent requests
// share it without locking. The Router performs no I/O itself.
type Router struct {
	handlers *handler.Set
	log      logger.Logger
	table    map[string]map[string]handler.Func
	allow    map[string][]string
}

// NewRouter builds a Router from the given routes. Registered paths are
// normalized and methods upper-cased, so the table lookup is exact.
func NewRouter(hs *handler.Set, log logger.Logger, routes ...Route) *Router {
	if log == nil {
		log = logger.Default()
	}

	table := make(map[string]map[string]handler.Func, len(routes))
	for _, route := range routes {
		path := normalizePath(route.Path)
		method := strings.ToUpper(route.Method)
		if table[path] == nil {
			table[path] = make(map[string]handler.Func)
		}
		table[path][method] = route.Handler
	}

	// Precompute the Allow list per path for 405 synthesis.
	allow := make(map[string][]string, len(table))
	for path, methods := range table {
		list := make([]string, 0, len(methods))
		for method := range methods {
			list = append(list, method)
		}
		sort.Strings(list)
		allow[path] = list
	}

	return &Router{
		handlers: hs,
		log:      log,
		table:    table,
		allow:    allow,
	}
}

// ServeHTTP implements http.Handler. Every branch logs its routing
// decision before dispatch; handler panics are recovered at this
// dispatch boundary and converted to a generic 500.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rw := respond.NewWriter(w, rt.log)
	defer rt.recoverPanic(rw, r)

	path := normalizePath(r.URL.Path)
	method := strings.ToUpper(r.Method)
	log := logger.L(r.Context())

	methods, ok := rt.table[path]
	if !ok {
		log.Info("routing decision",
			"method", method,
			"path", path,
			"outcome", "not_found",
		)
		rt.handlers.NotFound(rw, r)
		return
	}

	fn, ok := methods[method]
	if !ok {
		allowed := rt.allow[path]
		log.Warn("routing decision",
			"method", method,
			"path", path,
			"outcome", "method_not_allowed",
			"allow", strings.Join(allowed, ", "),
		)
		rt.handlers.MethodNotAllowed(allowed)(rw, r)
		return
	}

	log.Info("routing decision",
		"method", method,
		"path", path,
		"outcome", "matched",
	)
	fn(rw, r)
}

// recoverPanic converts a handler panic into a 500 response. If the
// response was already finalized, only the server-side log records it.
func (rt *Router) recoverPanic(w *respond.Writer, r *http.Request) {
	v := recover()
	if v == nil {
		return
	}

	logger.L(r.Context()).Error("handler panic recovered",
		"panic", v,
		"method", r.Method,
		"path", r.URL.Path,
		"stack", string(debug.Stack()),
	)

	if !w.Finalized() {
		rt.handlers.ServerError(fmt.Errorf("handler panic: %v", v))(w, r)
	}
}

// normalizePath strips any query/fragment remnants and collapses a single
// trailing slash, leaving the root untouched.
func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
