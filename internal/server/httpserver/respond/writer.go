// Package respond builds plain-text HTTP responses for greetd.
//
// A Writer wraps an http.ResponseWriter and enforces single
// finalization: headers and body are written exactly once, and any
// later attempt is rejected with ErrFinalized instead of silently
// duplicating output.
package respond

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/avosk/greetd/internal/telemetry/logger"
)

// ErrFinalized is returned when a response is written after finalization.
// Hitting it indicates a handler bug, not a runtime condition.
var ErrFinalized = errors.New("respond: response already finalized")

// Default header values applied to every response unless overridden.
const (
	DefaultContentType = "text/plain; charset=utf-8"
	DefaultConnection  = "keep-alive"
)

// Writer builds and finalizes a single HTTP response.
// It is owned by one request invocation and is not safe for sharing.
type Writer struct {
	w         http.ResponseWriter
	log       logger.Logger
	status    int
	bytes     int
	finalized bool
}

// NewWriter wraps w for a single response.
func NewWriter(w http.ResponseWriter, log logger.Logger) *Writer {
	if log == nil {
		log = logger.Default()
	}
	return &Writer{w: w, log: log}
}

// Send writes the complete response: default headers, caller-supplied
// extras (which override the defaults, e.g. Allow for 405), a computed
// Content-Length, the status line and the body. The response is
// finalized on return; a second Send returns ErrFinalized without
// touching the connection.
func (w *Writer) Send(status int, body string, extra http.Header) error {
	if w.finalized {
		w.log.Error("attempted write after response finalization",
			"status", status,
			"prior_status", w.status,
		)
		return ErrFinalized
	}

	header := w.w.Header()
	header.Set("Content-Type", DefaultContentType)
	header.Set("Connection", DefaultConnection)
	for key, values := range extra {
		header[http.CanonicalHeaderKey(key)] = values
	}
	header.Set("Content-Length", strconv.Itoa(len(body)))

	w.w.WriteHeader(status)
	n, err := io.WriteString(w.w, body)

	w.status = status
	w.bytes = n
	w.finalized = true

	w.log.Debug("response sent",
		"status", status,
		"bytes", n,
	)

	return err
}

// Delegate hands the underlying ResponseWriter to a handler that streams
// its own response (e.g. the metrics exporter) and finalizes this Writer
// so no further Send can interleave with it.
func (w *Writer) Delegate() http.ResponseWriter {
	w.finalized = true
	return w.w
}

// Finalized reports whether the response has been written.
func (w *Writer) Finalized() bool {
	return w.finalized
}

// Status returns the status code sent, or zero before finalization.
func (w *Writer) Status() int {
	return w.status
}

// Bytes returns the body length written, or zero before finalization.
func (w *Writer) Bytes() int {
	return w.bytes
}
