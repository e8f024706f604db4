// Package server is the connection layer: it accepts TCP connections,
// parses one HTTP request per connection, dispatches it through a frozen
// router, and serializes the response. Connections are serve-once
// (Connection: close); keep-alive pooling is deliberately out of scope.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/tinyweb-go/tinyweb/router"
)

// Server owns the listener, the worker pool, and the shared read-only
// router.
type Server struct {
	cfg      Config
	router   *router.Router
	logger   *slog.Logger
	metrics  *Metrics
	listener net.Listener
	pool     *pool

	closed     atomic.Bool
	acceptDone chan struct{}
	conns      sync.WaitGroup
}

// Option configures a Server before it starts accepting.
type Option func(*Server)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithConfig replaces the whole config.
func WithConfig(cfg Config) Option {
	return func(s *Server) { s.cfg = cfg }
}

// Serve starts serving connections from l using r. The router is frozen
// before the first accept, so no registration can race a lookup. Serve
// returns immediately; the accept loop runs until Close or Shutdown.
func Serve(l net.Listener, r *router.Router, opts ...Option) (*Server, error) {
	if r == nil {
		return nil, fmt.Errorf("server: nil router")
	}

	s := &Server{
		cfg:        DefaultConfig(),
		router:     r,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    NewMetrics(),
		listener:   l,
		acceptDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Freeze()
	s.pool = newPool(s.cfg.workers())

	s.logger.Info("server started",
		slog.String("addr", l.Addr().String()),
		slog.Int("workers", s.cfg.workers()),
		slog.Any("routes", r.Routes()),
	)

	go s.listen()
	return s, nil
}

// ListenAndServe opens a TCP listener on cfg.Addr and serves on it.
func ListenAndServe(cfg Config, r *router.Router, opts ...Option) (*Server, error) {
	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("server: listen %s: %w", cfg.Addr, err)
	}
	return Serve(l, r, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Addr returns the listener address, useful when listening on ":0".
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Metrics exposes the server counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) listen() {
	defer close(s.acceptDone)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return
			}
			s.logger.Error("accept failed", slog.Any("error", err))
			continue
		}

		s.conns.Add(1)
		s.pool.submit(func() {
			defer s.conns.Done()
			s.serveConn(conn)
		})
	}
}

// Close stops accepting and releases the listener. In-flight connections
// are not waited for; use Shutdown for that.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.listener.Close()
	// The pool can only be stopped once the accept loop can no longer
	// submit jobs to it.
	go func() {
		<-s.acceptDone
		s.pool.stop()
	}()
	return err
}

// Shutdown closes the listener and waits for in-flight connections to
// drain, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Close(); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
