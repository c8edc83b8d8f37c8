package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"PriceCast/internal/handler/api"
	"PriceCast/internal/telemetry"
	"PriceCast/internal/usecase"
	"PriceCast/pkg/cache"
	"PriceCast/pkg/config"
	xhttp "PriceCast/pkg/http"
	"PriceCast/pkg/http/middleware"
	applogger "PriceCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	handlers  *api.Handlers
	store     *telemetry.Store
	exporter  *usecase.TelemetryExporter
	respCache cache.Service

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handlers *api.Handlers,
	store *telemetry.Store,
	exporter *usecase.TelemetryExporter,
	respCache cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handlers:  handlers,
		store:     store,
		exporter:  exporter,
		respCache: respCache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// forecast latency samples flow through the timing middleware into
	// the telemetry store
	timing := middleware.Timing(a.store.RecordLatency, "/api/predict")

	a.httpServer = xhttp.NewServer(a.handlers,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithTiming(timing),
	)

	if a.exporter != nil {
		a.exporter.Start(ctx)
		a.logger.Info("telemetry exporter started", applogger.String("backend", a.cfg.Telemetry.Backend))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	// exporter flushes buffered records, then releases its backend
	if a.exporter != nil {
		a.exporter.Close()
	}

	if a.respCache != nil {
		if err := a.respCache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
