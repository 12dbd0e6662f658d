// Package app wires the client together: configuration, logging, the HTTP
// runner, the update loop and a front end (terminal UI or script).
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joe/fetch-examples/internal/config"
	"github.com/joe/fetch-examples/internal/fetch"
	"github.com/joe/fetch-examples/internal/logging"
	"github.com/joe/fetch-examples/internal/loop"
	"github.com/joe/fetch-examples/internal/tui"
	"github.com/joe/fetch-examples/internal/tui/shared"
	"github.com/joe/fetch-examples/internal/view"
)

const metricsShutdownTimeout = 2 * time.Second

// App holds the client's long-lived dependencies.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	runner   *fetch.Runner
	scenario Scenario
}

// New creates the client. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()

	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		runner:   fetch.NewRunner(FetchOptions(cfg), fetch.NewMetrics(registry), logger.Named("fetch")),
		scenario: ScenarioFor(cfg),
	}
}

// NewLogger builds the client logger from cfg. An empty log path yields a
// no-op logger.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}

	logger, err := logging.New(logging.FileConfig(cfg.LogPath, cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// FetchOptions maps the client configuration onto HTTP client options.
func FetchOptions(cfg *config.Config) fetch.Options {
	opts := fetch.DefaultOptions()
	opts.BaseURL = cfg.BaseURL
	opts.Timeout = cfg.Timeout
	opts.Retries = cfg.Retries
	opts.RateLimit = cfg.RateLimit
	opts.Burst = 1

	return opts
}

// Scenario returns the scenario the app runs.
func (a *App) Scenario() Scenario {
	return a.scenario
}

// Registry returns the registry the client metrics are registered with.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

func (a *App) newDispatcher(ctx context.Context, renderer loop.Renderer) *loop.Dispatcher {
	return loop.NewDispatcher(ctx, loop.NewModel(a.scenario.Endpoint), a.runner, renderer, a.logger.Named("loop"))
}

// RunInteractive runs the terminal UI until the user quits or ctx is
// cancelled. Outstanding requests are aborted and settled before it returns.
func (a *App) RunInteractive(ctx context.Context, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.serveMetrics(ctx)

	bridge := shared.NewRenderBridge(view.New(a.scenario.Page))
	dispatcher := a.newDispatcher(ctx, bridge)
	model := tui.NewAppModel(dispatcher, bridge, a.cfg.LogPath)

	a.logger.Info("starting interactive session",
		zap.Stringer("scenario", a.cfg.Scenario),
		zap.String("base_url", a.cfg.BaseURL))

	dispatcher.Start()

	program := tea.NewProgram(model, append(opts, tea.WithContext(ctx))...)
	_, err := program.Run()

	cancel()
	a.runner.Wait()
	bridge.Close()

	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	return nil
}

// serveMetrics exposes the client registry on the configured address until
// ctx is done. Failures are logged; the client keeps running without them.
func (a *App) serveMetrics(ctx context.Context) {
	if a.cfg.MetricsAddr == "" {
		return
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("serving client metrics", zap.String("addr", a.cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Warn("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics server shutdown failed", zap.Error(err))
		}
	}()
}
