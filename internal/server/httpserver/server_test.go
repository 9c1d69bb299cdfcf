package httpserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/avosk/greetd/internal/server/config"
	"github.com/avosk/greetd/internal/server/httpserver/handler"
)

func newTestConfig(port int) *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	return cfg
}

// waitForState polls until the server reaches the wanted state or times out.
func waitForState(t *testing.T, srv *Server, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("server did not reach state %s, stuck at %s", want, srv.State())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInitializing, "initializing"},
		{StateBinding, "binding"},
		{StateListening, "listening"},
		{StateDraining, "draining"},
		{StateStopped, "stopped"},
		{StateErrored, "errored"},
		{State(99), "unknown(99)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestServer_InitialState(t *testing.T) {
	srv := New(newTestConfig(0), http.NotFoundHandler(), nil)

	if got := srv.State(); got != StateInitializing {
		t.Errorf("State() = %s, want initializing", got)
	}
	if got := srv.Addr(); got != "" {
		t.Errorf("Addr() = %q before Start, want empty", got)
	}
}

func TestServer_StartServeShutdown(t *testing.T) {
	hs := handler.New(nil)
	rt := NewRouter(hs, nil, Route{Path: "/hello", Method: http.MethodGet, Handler: hs.Hello})
	srv := New(newTestConfig(0), rt, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	waitForState(t, srv, StateListening)

	resp, err := http.Get("http://" + srv.Addr() + "/hello")
	if err != nil {
		t.Fatalf("GET /hello: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != "Hello world" {
		t.Errorf("body = %q, want %q", body, "Hello world")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if got := srv.State(); got != StateStopped {
		t.Errorf("State() after shutdown = %s, want stopped", got)
	}
	if err := <-errCh; err != nil {
		t.Errorf("Start returned %v after clean shutdown, want nil", err)
	}
}

func TestServer_ShutdownDrainsInFlight(t *testing.T) {
	release := make(chan struct{})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, "slow done")
	})
	srv := New(newTestConfig(0), h, nil)

	go srv.Start()
	waitForState(t, srv, StateListening)

	type result struct {
		body string
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + srv.Addr() + "/slow")
		if err != nil {
			resCh <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		resCh <- result{body: string(body)}
	}()

	// Let the request reach the handler, then start draining.
	time.Sleep(50 * time.Millisecond)
	shutdownDone := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		shutdownDone <- srv.Shutdown(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)

	res := <-resCh
	if res.err != nil {
		t.Fatalf("in-flight request failed during drain: %v", res.err)
	}
	if res.body != "slow done" {
		t.Errorf("body = %q, want %q", res.body, "slow done")
	}
	if err := <-shutdownDone; err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	if got := srv.State(); got != StateStopped {
		t.Errorf("State() = %s, want stopped", got)
	}
}

func TestServer_BindFailure(t *testing.T) {
	// Occupy a port so the server's bind fails.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	srv := New(newTestConfig(port), http.NotFoundHandler(), nil)
	err = srv.Start()

	if err == nil {
		t.Fatal("Start on an occupied port should fail")
	}
	if got := srv.State(); got != StateErrored {
		t.Errorf("State() = %s, want errored", got)
	}
}

func TestServer_ShutdownAfterBindFailureKeepsErrored(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	srv := New(newTestConfig(port), http.NotFoundHandler(), nil)
	if err := srv.Start(); err == nil {
		t.Fatal("Start on an occupied port should fail")
	}

	// The shutdown hook fires regardless of how Start ended; it must not
	// drive a server that never listened through draining to stopped.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown after bind failure: %v, want nil no-op", err)
	}
	if got := srv.State(); got != StateErrored {
		t.Errorf("State() = %s, want errored (terminal)", got)
	}
}

func TestServer_ShutdownBeforeStartIsNoOp(t *testing.T) {
	srv := New(newTestConfig(0), http.NotFoundHandler(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown before Start: %v, want nil no-op", err)
	}
	if got := srv.State(); got != StateInitializing {
		t.Errorf("State() = %s, want initializing", got)
	}
}

func TestServer_ShutdownRefusesNewConnections(t *testing.T) {
	srv := New(newTestConfig(0), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), nil)

	go srv.Start()
	waitForState(t, srv, StateListening)
	addr := srv.Addr()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Error("connection accepted after shutdown")
	}
}
