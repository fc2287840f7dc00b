// Package server owns the application lifecycle: HTTP delivery, the periodic
// aggregation runs, and graceful teardown of infrastructure clients.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/handler/api"
	"StockPulse/internal/handler/ws"
	"StockPulse/internal/usecase"
	pkgcache "StockPulse/pkg/cache"
	pkgch "StockPulse/pkg/clickhouse"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"
)

// Resources bundles the closable infrastructure the app owns.
type Resources struct {
	Sink      drepo.RecordSink
	Publisher drepo.RecordPublisher
	CH        *pkgch.Client
	Cache     pkgcache.Service
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *xlogger.Logger
	pipeline   *usecase.Pipeline
	handler    *api.StocksHandler
	hub        *ws.Hub
	res        Resources
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *xlogger.Logger,
	pipeline *usecase.Pipeline,
	handler *api.StocksHandler,
	hub *ws.Hub,
	res Resources,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		pipeline: pipeline,
		handler:  handler,
		hub:      hub,
		res:      res,
	}
}

// RunOnce performs a single aggregation run and returns its records.
// Used by the CLI one-shot mode; no server is started.
func (a *App) RunOnce(ctx context.Context) error {
	_, err := a.pipeline.Run(ctx)
	return err
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	)
	a.hub.RegisterRoutes(a.httpServer.Echo())

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.log.Info("http server started", xlogger.Int("port", a.cfg.Server.Port))

	go a.runLoop(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// runLoop performs the first run immediately, then repeats at the configured
// interval. A failed run is logged and the next tick tries again.
func (a *App) runLoop(ctx context.Context) {
	if _, err := a.pipeline.Run(ctx); err != nil {
		a.log.Error("run failed", xlogger.Error(err))
	}
	if a.cfg.Pipeline.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(a.cfg.Pipeline.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.pipeline.Run(ctx); err != nil {
				a.log.Error("run failed", xlogger.Error(err))
			}
		}
	}
}

// shutdown gracefully stops delivery and closes infrastructure clients.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", xlogger.Error(err))
		}
	}
	a.hub.Close()

	if a.res.Publisher != nil {
		if err := a.res.Publisher.Close(); err != nil {
			a.log.Warn("publisher close error", xlogger.Error(err))
		}
	}
	if a.res.CH != nil {
		if err := a.res.CH.Close(); err != nil {
			a.log.Warn("clickhouse close error", xlogger.Error(err))
		}
	}
	if a.res.Cache != nil {
		if err := a.res.Cache.Close(); err != nil {
			a.log.Warn("cache close error", xlogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
