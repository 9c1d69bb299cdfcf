// Package httpserver implements the greetd HTTP server.
package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/avosk/greetd/internal/telemetry/logger"
	"github.com/avosk/greetd/internal/telemetry/metric"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together.
// The first middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a unique request ID to each request.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Honor an ID supplied by an upstream proxy
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = "req-" + randomID()
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := logger.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// randomID returns a short random hex identifier.
func randomID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

// RequestLog logs request completion with a level derived from the
// response status: 5xx at ERROR, 4xx at WARN, everything else at INFO.
func RequestLog(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			attrs := []any{
				"request_id", logger.RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"client_ip", getClientIP(r),
			}

			switch {
			case wrapped.statusCode >= 500:
				log.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				log.Warn("request completed with client error", attrs...)
			default:
				log.Info("request completed", attrs...)
			}
		})
	}
}

// limiterIdleTTL is how long a client's token bucket survives without
// traffic before it is evicted from the registry.
const limiterIdleTTL = 3 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterRegistry keeps one token bucket per client IP. Entries idle
// for longer than limiterIdleTTL are swept out so the map stays bounded
// by the set of recently active clients.
type limiterRegistry struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rps       int
	nextSweep time.Time
}

func (reg *limiterRegistry) get(ip string) *rate.Limiter {
	now := time.Now()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if now.After(reg.nextSweep) {
		for addr, e := range reg.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(reg.entries, addr)
			}
		}
		reg.nextSweep = now.Add(limiterIdleTTL)
	}

	e, ok := reg.entries[ip]
	if !ok {
		// rps requests per second with a burst of rps
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(reg.rps), reg.rps)}
		reg.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimit applies per-client-IP rate limiting.
func RateLimit(requestsPerSecond int) Middleware {
	registry := &limiterRegistry{
		entries:   make(map[string]*limiterEntry),
		rps:       requestsPerSecond,
		nextSweep: time.Now().Add(limiterIdleTTL),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !registry.get(getClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics records request counts, latency and in-flight gauge.
func Metrics(reg *metric.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reg.RequestsInFlight.Inc()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			reg.RequestsInFlight.Dec()
			reg.ObserveRequest(r.Method, normalizePath(r.URL.Path), wrapped.statusCode, time.Since(start))
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr.
	// net.SplitHostPort handles IPv6 addresses like [::1]:8080.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
