package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bdcommerce/order-extractor/internal/async"
	"github.com/bdcommerce/order-extractor/internal/common"
	"github.com/bdcommerce/order-extractor/internal/export"
	"github.com/bdcommerce/order-extractor/internal/patterns"
	"github.com/bdcommerce/order-extractor/internal/pipeline"
	"github.com/bdcommerce/order-extractor/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	lib := patterns.Default()
	if cfg.Pipeline.PatternsPath != "" {
		loaded, err := patterns.Load(cfg.Pipeline.PatternsPath)
		if err != nil {
			logger.Error("failed to load patterns file", "path", cfg.Pipeline.PatternsPath, "error", err)
			os.Exit(1)
		}
		lib = loaded
		logger.Info("patterns loaded", "path", cfg.Pipeline.PatternsPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer := export.NewWriter(cfg.Pipeline.SheetName, logger)
	proc := pipeline.NewProcessor(lib, writer, logger)

	queue := async.NewQueue(proc, cfg.Pipeline.OutputDir, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.QueueSize),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
	)

	srv := server.New(proc, queue, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("orderxd listening", "addr", cfg.Server.HTTPAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
}
