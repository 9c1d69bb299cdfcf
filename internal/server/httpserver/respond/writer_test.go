package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriter_Send(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec, nil)

	if err := w.Send(http.StatusOK, "Hello world", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "Hello world" {
		t.Errorf("body = %q, want %q", got, "Hello world")
	}
	if got := rec.Header().Get("Content-Type"); got != DefaultContentType {
		t.Errorf("Content-Type = %q, want %q", got, DefaultContentType)
	}
	if got := rec.Header().Get("Connection"); got != DefaultConnection {
		t.Errorf("Connection = %q, want %q", got, DefaultConnection)
	}
	if got := rec.Header().Get("Content-Length"); got != "11" {
		t.Errorf("Content-Length = %q, want %q", got, "11")
	}
}

func TestWriter_SendTwice(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec, nil)

	if err := w.Send(http.StatusOK, "first", nil); err != nil {
		t.Fatalf("first Send() error = %v", err)
	}
	err := w.Send(http.StatusInternalServerError, "second", nil)
	if !errors.Is(err, ErrFinalized) {
		t.Errorf("second Send() error = %v, want ErrFinalized", err)
	}

	// The first response must be untouched.
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "first" {
		t.Errorf("body = %q, want %q", got, "first")
	}
}

func TestWriter_ExtraHeadersOverrideDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec, nil)

	extra := http.Header{}
	extra.Set("Allow", "GET")
	extra.Set("Connection", "close")

	if err := w.Send(http.StatusMethodNotAllowed, "Method Not Allowed", extra); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if got := rec.Header().Get("Allow"); got != "GET" {
		t.Errorf("Allow = %q, want %q", got, "GET")
	}
	if got := rec.Header().Get("Connection"); got != "close" {
		t.Errorf("Connection = %q, caller header should override default", got)
	}
	if got := rec.Header().Get("Content-Type"); got != DefaultContentType {
		t.Errorf("Content-Type = %q, want default preserved", got)
	}
}

func TestWriter_State(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec, nil)

	if w.Finalized() {
		t.Error("Finalized() = true before Send")
	}
	if w.Status() != 0 {
		t.Errorf("Status() = %d before Send, want 0", w.Status())
	}

	if err := w.Send(http.StatusNotFound, "Not Found", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if !w.Finalized() {
		t.Error("Finalized() = false after Send")
	}
	if w.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want 404", w.Status())
	}
	if w.Bytes() != len("Not Found") {
		t.Errorf("Bytes() = %d, want %d", w.Bytes(), len("Not Found"))
	}
}

func TestWriter_Delegate(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewWriter(rec, nil)

	raw := w.Delegate()
	if raw == nil {
		t.Fatal("Delegate() returned nil")
	}
	if !w.Finalized() {
		t.Error("Delegate() should finalize the writer")
	}
	if err := w.Send(http.StatusOK, "late", nil); !errors.Is(err, ErrFinalized) {
		t.Errorf("Send() after Delegate() error = %v, want ErrFinalized", err)
	}
}
