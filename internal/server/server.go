// Package server is the demo API the example pages talk to.
//
// Routes:
//
//	GET /api/delayed-response/:delay   text body "Delay was <n> ms" after n ms
//	GET /healthz                       liveness
//	GET /metrics                       Prometheus metrics
//
// Every other route answers 404 with an empty body, which is what the
// decode-failure example relies on.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// statusClientClosedRequest is recorded when the client goes away before
// the response is written.
const statusClientClosedRequest = 499

// Server wraps the router and its dependencies.
type Server struct {
	router  *gin.Engine
	config  *Config
	logger  *zap.Logger
	metrics *Metrics
}

// New creates a server. Metrics are registered with reg and served from it.
func New(cfg *Config, logger *zap.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.New(),
		config:  cfg,
		logger:  logger,
		metrics: NewMetrics(reg),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(logger))
	s.router.Use(s.metrics.Middleware())
	s.router.Use(CORS(NewOriginFilter(cfg.CORSOrigins)))

	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	s.router.GET("/api/delayed-response/:delay", s.delayedResponse)
	s.router.NoRoute(s.notFound)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) notFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

func (s *Server) delayedResponse(c *gin.Context) {
	raw := c.Param("delay")

	// Out-of-range positive values come back as MaxInt64 and are capped below.
	ms, err := strconv.ParseInt(raw, 10, 64)
	if (err != nil && !(errors.Is(err, strconv.ErrRange) && ms > 0)) || ms < 0 {
		c.String(http.StatusBadRequest, "invalid delay: %q", raw)
		return
	}

	// Compared in milliseconds: converting a huge ms to a Duration overflows.
	delay := s.config.MaxDelay
	if ms < s.config.MaxDelay.Milliseconds() {
		delay = time.Duration(ms) * time.Millisecond
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-c.Request.Context().Done():
		s.metrics.DelaysAborted.Inc()
		s.logger.Info("client went away before delayed response",
			zap.Int64("requested_ms", ms),
			zap.Error(context.Cause(c.Request.Context())))
		c.AbortWithStatus(statusClientClosedRequest)
		return
	case <-timer.C:
	}

	c.String(http.StatusOK, "Delay was %d ms", delay.Milliseconds())
}
