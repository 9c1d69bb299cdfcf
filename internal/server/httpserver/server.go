// Package httpserver implements the greetd HTTP server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"syscall"

	"github.com/avosk/greetd/internal/server/config"
	"github.com/avosk/greetd/internal/telemetry/logger"
)

// State is a phase in the server lifecycle. Transitions only move
// forward: Initializing, Binding, Listening, Draining, Stopped.
// Errored is terminal and reachable from Binding or Listening.
type State int32

const (
	StateInitializing State = iota
	StateBinding
	StateListening
	StateDraining
	StateStopped
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateBinding:
		return "binding"
	case StateListening:
		return "listening"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	case StateErrored:
		return "errored"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Server owns the HTTP listener and its lifecycle.
type Server struct {
	httpServer *http.Server
	state      atomic.Int32
	boundAddr  atomic.Value // string, set once bound
	log        logger.Logger
}

// New creates a Server bound to the configured address, serving h.
// The server is in the Initializing state until Start is called.
func New(cfg *config.Config, h http.Handler, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           h,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			ErrorLog:          logger.StdLogger("warn"),
		},
		log: log,
	}
	s.state.Store(int32(StateInitializing))
	return s
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listen address, or "" before binding.
// With a configured port of 0 this is the kernel-assigned address.
func (s *Server) Addr() string {
	if v := s.boundAddr.Load(); v != nil {
		return v.(string)
	}
	return ""
}

func (s *Server) setState(st State) {
	s.state.Store(int32(st))
	s.log.Debug("server state changed", "state", st.String())
}

// Start binds the listen address and serves until Shutdown is called
// or the listener fails. It blocks for the lifetime of the server and
// returns nil on a clean shutdown.
//
// The bind is performed explicitly so that bind failures can be
// reported with an actionable diagnostic before any request is served.
func (s *Server) Start() error {
	s.setState(StateBinding)

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.setState(StateErrored)
		diag := bindDiagnostic(err, s.httpServer.Addr)
		s.log.Error("failed to bind listen address",
			"addr", s.httpServer.Addr,
			"error", err,
			"hint", diag,
		)
		return fmt.Errorf("bind %s: %w", s.httpServer.Addr, err)
	}

	s.boundAddr.Store(ln.Addr().String())
	s.setState(StateListening)
	s.log.Info("server listening",
		"addr", ln.Addr().String(),
		"url", "http://"+ln.Addr().String(),
	)

	err = s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Shutdown already drove the state to Stopped.
		return nil
	}

	s.setState(StateErrored)
	return fmt.Errorf("serve: %w", err)
}

// Shutdown drains in-flight requests and stops the server. New
// connections are refused as soon as draining begins. The ctx bounds
// the drain; when it expires, remaining connections are abandoned.
//
// Only a listening server can drain: if the server never bound, already
// stopped, or errored (a terminal state), Shutdown is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateListening), int32(StateDraining)) {
		s.log.Debug("shutdown skipped", "state", s.State().String())
		return nil
	}
	s.log.Debug("server state changed", "state", StateDraining.String())
	s.log.Info("server draining")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.setState(StateErrored)
		return fmt.Errorf("shutdown: %w", err)
	}

	s.setState(StateStopped)
	s.log.Info("server stopped")
	return nil
}

// bindDiagnostic maps common bind errors to an actionable hint.
func bindDiagnostic(err error, addr string) string {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Sprintf("address %s is already in use; stop the other process or pick a different port", addr)
	case errors.Is(err, syscall.EACCES):
		return fmt.Sprintf("binding %s was denied; ports below 1024 need elevated privileges", addr)
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return fmt.Sprintf("address %s is not available on this host; check the configured host", addr)
	default:
		return "check the configured host and port"
	}
}
