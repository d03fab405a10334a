package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/account-auth/internal/logger"
	"github.com/dtroode/account-auth/internal/model"
)

var _ model.Server = (*Server)(nil)

// ReadinessChecker reports whether dependencies are reachable.
type ReadinessChecker func(ctx context.Context) error

// Server serves /metrics and the health probes over HTTP.
type Server struct {
	addr       string
	registry   *prometheus.Registry
	metrics    *Metrics
	isReady    ReadinessChecker
	httpServer *http.Server
	running    atomic.Bool
	logger     *logger.Logger
}

// NewServer creates a server with its own registry carrying the Go runtime
// collectors and the account metrics.
func NewServer(addr string, isReady ReadinessChecker, logger *logger.Logger) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
		isReady:  isReady,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Metrics returns the collectors used to record operation outcomes.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the HTTP handler with all endpoints mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)
	return mux
}

func (s *Server) Start(securityLayer model.SecurityLayer) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("metrics server already running")
	}

	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("metrics server started", "address", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	return nil
}

func (s *Server) Address() string {
	return s.addr
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady != nil {
		if err := s.isReady(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "error", err.Error())
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready\n"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
