package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferreiralabs/soccergraph/internal/app"
	"github.com/ferreiralabs/soccergraph/internal/config"
	"github.com/ferreiralabs/soccergraph/internal/observability"
	"github.com/ferreiralabs/soccergraph/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		os.Exit(1)
	}

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init profiling", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	pool := app.NewGraphPool(cfg, logger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.ConnectGraph(startupCtx, pool, logger); err != nil {
		cancelStartup()
		logger.Error("graph startup failed", "error", err)
		os.Exit(1)
	}
	cancelStartup()

	srv, err := app.NewHTTPServer(cfg, pool, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if err := pool.Close(shutdownCtx); err != nil {
		logger.Error("close graph pool failed", "error", err)
	}

	if pprofSrv != nil {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server failed", "error", err)
		}
	}
	if stopProfiling != nil {
		if err := stopProfiling(); err != nil {
			logger.Error("stop profiling failed", "error", err)
		}
	}
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("shutdown tracing failed", "error", err)
		}
	}

	logger.Info("http server stopped")
}
