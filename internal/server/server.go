// Package server exposes grid generation over HTTP.
//
// Routes:
//
//	GET /generate?words=cat,art,tar[&json=true|&format=text|json|svg]
//	GET /healthz
//	GET /metrics
//
// A weighted semaphore caps concurrent searches at Config.MaxConcurrent,
// and a token bucket limits the request rate. Bad requests return 400 with
// the validation message, timeouts return 504, and anything else returns an
// opaque 500 that carries the request ID for the logs.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/matzehuels/crossgrid/pkg/generate"
)

// Defaults for Config.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 15 * time.Second
)

// Config configures a Server. Zero values fall back to defaults.
type Config struct {
	Addr string `toml:"addr"`
	// MaxConcurrent bounds simultaneous searches. Defaults to GOMAXPROCS.
	MaxConcurrent int64 `toml:"max_concurrent"`
	// RateLimit is the sustained request rate per second. Zero disables it.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`

	ShutdownTimeout time.Duration    `toml:"-"`
	Generate        generate.Options `toml:"-"`
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = int64(runtime.GOMAXPROCS(0))
	}
	if c.RateLimit > 0 && c.Burst <= 0 {
		c.Burst = max(1, int(c.RateLimit))
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Server serves generation requests through a shared generate.Runner.
type Server struct {
	cfg     Config
	runner  *generate.Runner
	metrics *Metrics
	logger  *log.Logger
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// New returns a server. A nil metrics disables /metrics and a nil logger
// discards logs.
func New(cfg Config, runner *generate.Runner, metrics *Metrics, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		metrics: metrics,
		logger:  logger,
		sem:     semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(s.recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}
	r.With(s.rateLimit).Get("/generate", s.handleGenerate)
	return r
}

// Run serves until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String(), "max_concurrent", s.cfg.MaxConcurrent)
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
