package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/paper-flow/internal/api"
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/jobs"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
	"github.com/nguyentantai21042004/paper-flow/internal/processor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	manager := jobs.NewManager()
	bus := jobs.NewEventBus(cfg.Server.EventBuffer)
	runner := jobs.NewRunner(manager, bus, log)

	proc, err := processor.Build(cfg, log, processor.WithObserver(runner.Observe))
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}

	run := func(ctx context.Context) (models.RunResult, error) {
		return proc.Process(ctx)
	}
	handler := api.NewHandler(ctx, runner, manager, bus, run, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "API listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		log.Error(context.Background(), "Server error: %v", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "Server shutdown: %v", err)
	}

	// The run context was cancelled above; wait for the active run to unwind
	runner.Wait()
	log.Info(shutdownCtx, "Server stopped")
}
